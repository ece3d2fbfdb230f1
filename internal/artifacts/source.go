package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"career-predictor/internal/common/config"
	"career-predictor/internal/common/database"
	httpclient "career-predictor/internal/common/http"
)

// Source fetches serialized artifacts by name.
type Source interface {
	Name() string
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// fileExtensions are tried in order when a name has no extension.
var fileExtensions = []string{".json", ".yaml", ".yml"}

// FileSource reads <dir>/<name>[.json|.yaml|.yml].
type FileSource struct {
	Dir string
}

func (s FileSource) Name() string { return config.SourceFile }

func (s FileSource) Fetch(_ context.Context, name string) ([]byte, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range fileExtensions {
			candidates = append(candidates, name+ext)
		}
	}
	for _, c := range candidates {
		b, err := os.ReadFile(filepath.Join(s.Dir, c))
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read artifact %s: %w", c, err)
		}
	}
	return nil, fmt.Errorf("artifact %q not found in %s (tried %s)", name, s.Dir, strings.Join(candidates, ", "))
}

// HTTPSource downloads <base_url>/<name>.json.
type HTTPSource struct {
	BaseURL string
	Client  *httpclient.Client
}

func (s HTTPSource) Name() string { return config.SourceHTTP }

func (s HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	u, err := url.JoinPath(s.BaseURL, name)
	if err != nil {
		return nil, fmt.Errorf("build artifact url: %w", err)
	}
	return s.Client.Get(ctx, u)
}

// RedisSource reads the value at <prefix><name>.
type RedisSource struct {
	Client    *database.RedisClient
	KeyPrefix string
}

func (s RedisSource) Name() string { return config.SourceRedis }

func (s RedisSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	return s.Client.GetBytes(ctx, s.KeyPrefix+name)
}

// PostgresSource reads the payload column of the row named name.
type PostgresSource struct {
	Client *database.PostgresClient
	Table  string
}

func (s PostgresSource) Name() string { return config.SourcePostgres }

func (s PostgresSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	return s.Client.FetchPayload(ctx, s.Table, name)
}

// OpenSource builds the source selected by cfg.Model.Artifacts.Source. The
// returned close func releases any client the source owns.
func OpenSource(cfg *config.Config) (Source, func() error, error) {
	a := cfg.Model.Artifacts
	noop := func() error { return nil }

	switch a.Source {
	case config.SourceFile:
		return FileSource{Dir: a.Dir}, noop, nil
	case config.SourceHTTP:
		client := httpclient.NewClient(config.GetDuration(a.Timeout))
		return HTTPSource{BaseURL: a.BaseURL, Client: client}, noop, nil
	case config.SourceRedis:
		client, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, nil, err
		}
		return RedisSource{Client: client, KeyPrefix: a.KeyPrefix}, client.Close, nil
	case config.SourcePostgres:
		client, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return PostgresSource{Client: client, Table: a.Table}, client.Close, nil
	}
	return nil, nil, fmt.Errorf("artifact source %q is not supported", a.Source)
}
