package postgres

import (
	"context"
)

// Find finds records that match the given conditions
func (p *Postgres) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Find(dest, conditions...).Error
}

// First finds the first record that matches the given conditions
func (p *Postgres) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).First(dest, conditions...).Error
}

// Create creates a new record
func (p *Postgres) Create(ctx context.Context, value interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Create(value).Error
}

// Save updates a record, inserting it if it does not exist yet
func (p *Postgres) Save(ctx context.Context, value interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Save(value).Error
}

// UpdateWhere updates records that match the given condition and reports
// how many rows were affected
func (p *Postgres) UpdateWhere(ctx context.Context, model interface{}, attrs interface{}, condition string, args ...interface{}) (int64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := p.client.WithContext(ctx).Model(model).Where(condition, args...).Updates(attrs)
	return result.RowsAffected, result.Error
}

// Delete deletes records that match the given conditions and reports
// how many rows were removed
func (p *Postgres) Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := p.client.WithContext(ctx).Delete(value, conditions...)
	return result.RowsAffected, result.Error
}

// Count counts records of the model that match the given condition
func (p *Postgres) Count(ctx context.Context, model interface{}, count *int64, condition string, args ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Model(model).Where(condition, args...).Count(count).Error
}
