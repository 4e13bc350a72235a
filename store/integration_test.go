package store

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/pkg/postgres"
)

type testLogger struct {
	t *testing.T
}

func (l testLogger) Info(msg string, err error, _ ...map[string]interface{}) {
	l.t.Logf("INFO: %s err=%v", msg, err)
}
func (l testLogger) Debug(msg string, err error, _ ...map[string]interface{}) {
	l.t.Logf("DEBUG: %s err=%v", msg, err)
}
func (l testLogger) Warn(msg string, err error, _ ...map[string]interface{}) {
	l.t.Logf("WARN: %s err=%v", msg, err)
}
func (l testLogger) Error(msg string, err error, _ ...map[string]interface{}) {
	l.t.Logf("ERROR: %s err=%v", msg, err)
}
func (l testLogger) Fatal(msg string, err error, _ ...map[string]interface{}) {
	l.t.Logf("FATAL: %s err=%v", msg, err)
}

// postgresContainer represents a Postgres container for testing.
type postgresContainer struct {
	testcontainers.Container
	Config postgres.Config
	Host   string
	Port   string
}

// setupPostgresContainer starts a disposable Postgres container and waits
// until it accepts connections.
func setupPostgresContainer(ctx context.Context) (*postgresContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portStr := fmt.Sprintf("%d", port)
	portBindings := nat.PortMap{
		"5432/tcp": []nat.PortBinding{{HostPort: portStr}},
	}

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	pgc, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgc.Host(ctx)
	if err != nil {
		_ = pgc.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := pgc.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgc.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}
	portStr = mappedPort.Port()

	if err := waitForPostgresReady(host, portStr, "testuser", "testpass", "testdb", 30*time.Second); err != nil {
		_ = pgc.Terminate(ctx)
		return nil, fmt.Errorf("postgres container not ready: %w", err)
	}

	return &postgresContainer{
		Container: pgc,
		Config: postgres.Config{
			Connection: postgres.Connection{
				Host:     host,
				Port:     portStr,
				User:     "testuser",
				Password: "testpass",
				DbName:   "testdb",
				SSLMode:  "disable",
			},
		},
		Host: host,
		Port: portStr,
	}, nil
}

// getFreePort gets a free port from the OS.
func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = addr.Close() }()

	return addr.Addr().(*net.TCPAddr).Port, nil
}

// waitForPostgresReady attempts to connect to PostgreSQL until it's ready
// or times out.
func waitForPostgresReady(host, port, user, password, dbname string, timeout time.Duration) error {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	startTime := time.Now()
	for {
		if time.Since(startTime) > timeout {
			return fmt.Errorf("timed out waiting for PostgreSQL to be ready after %s", timeout)
		}

		db, err := sql.Open("postgres", connStr)
		if err != nil {
			time.Sleep(500 * time.Millisecond)
			continue
		}

		err = db.Ping()
		if err == nil {
			return db.Close()
		}
		_ = db.Close()
		time.Sleep(500 * time.Millisecond)
	}
}

func TestRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pgc, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := pgc.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using PostgreSQL on %s:%s", pgc.Host, pgc.Port)

	db, err := postgres.NewPostgres(pgc.Config, testLogger{t})
	require.NoError(t, err)
	defer db.GracefulShutdown()

	require.NoError(t, Provision(db))
	// Provisioning twice must be a no-op.
	require.NoError(t, Provision(db))

	vocabs := NewVocabularies(db)
	terms := NewTerms(db)

	t.Run("Vocabularies", func(t *testing.T) {
		vocab := &model.Vocabulary{StringKey: "subjects", DisplayLabel: "Subjects"}
		require.NoError(t, vocabs.Insert(ctx, vocab))
		assert.Greater(t, vocab.ID, uint(0))

		// The string key carries a unique constraint.
		err := vocabs.Insert(ctx, &model.Vocabulary{StringKey: "subjects", DisplayLabel: "Again"})
		require.Error(t, err)
		assert.ErrorIs(t, err, postgres.ErrDuplicateKey)

		found, err := vocabs.FindByKey(ctx, "subjects")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Subjects", found.DisplayLabel)

		found, err = vocabs.FindByKey(ctx, "genres")
		require.NoError(t, err)
		assert.Nil(t, found)

		affected, err := vocabs.UpdateLabel(ctx, "subjects", "All Subjects")
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		affected, err = vocabs.UpdateLabel(ctx, "genres", "Genres")
		require.NoError(t, err)
		assert.Zero(t, affected)

		require.NoError(t, vocabs.DeleteByKey(ctx, "subjects"))
		require.NoError(t, vocabs.DeleteByKey(ctx, "subjects"))
	})

	t.Run("Terms", func(t *testing.T) {
		require.NoError(t, vocabs.Insert(ctx, &model.Vocabulary{StringKey: "subjects", DisplayLabel: "Subjects"}))

		term := &model.Term{
			VocabularyStringKey: "subjects",
			URI:                 "http://example.org/terms/1",
			Value:               "Machine Learning",
			AdditionalFields: model.FieldMap{
				"language": model.String("en"),
				"codes":    model.Integers(10, 20),
			},
		}
		require.NoError(t, terms.Insert(ctx, term))
		assert.Equal(t, model.HashURI(term.URI), term.URIHash, "the save hook fills the hash column")

		// The uri_hash column carries a unique constraint.
		err := terms.Insert(ctx, &model.Term{
			VocabularyStringKey: "subjects",
			URI:                 "http://example.org/terms/1",
			Value:               "Duplicate",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, postgres.ErrDuplicateKey)

		found, err := terms.FindByURI(ctx, "http://example.org/terms/1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Machine Learning", found.Value)
		assert.True(t, found.AdditionalFields["language"].Equal(model.String("en")))
		assert.True(t, found.AdditionalFields["codes"].Equal(model.Integers(10, 20)),
			"additional fields survive the JSON column round trip")

		found.Value = "Statistical Learning"
		found.AdditionalFields = model.FieldMap{"language": model.String("de")}
		require.NoError(t, terms.Update(ctx, found))

		found, err = terms.FindByURI(ctx, "http://example.org/terms/1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Statistical Learning", found.Value)
		require.Len(t, found.AdditionalFields, 1)
		assert.True(t, found.AdditionalFields["language"].Equal(model.String("de")))

		found, err = terms.FindByURI(ctx, "http://example.org/terms/none")
		require.NoError(t, err)
		assert.Nil(t, found)

		affected, err := terms.DeleteByURI(ctx, "http://example.org/terms/1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		affected, err = terms.DeleteByURI(ctx, "http://example.org/terms/1")
		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("ForEachBatch", func(t *testing.T) {
		for i := 1; i <= 5; i++ {
			require.NoError(t, terms.Insert(ctx, &model.Term{
				VocabularyStringKey: "subjects",
				URI:                 fmt.Sprintf("http://example.org/batch/%d", i),
				Value:               fmt.Sprintf("t%d", i),
			}))
		}

		var seen []string
		err := terms.ForEachBatch(ctx, 2, func(batch []model.Term) error {
			assert.LessOrEqual(t, len(batch), 2)
			for i := range batch {
				seen = append(seen, batch[i].URI)
			}
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, seen, 5)
	})
}
