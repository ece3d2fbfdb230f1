package artifacts

import (
	"context"
	"fmt"

	"career-predictor/internal/common/config"
	apperrors "career-predictor/internal/common/errors"
)

// Store is a Source that can also be written to.
type Store interface {
	Source
	Ping(ctx context.Context) error
	Put(ctx context.Context, name string, data []byte) error
}

func (s RedisSource) Ping(ctx context.Context) error { return s.Client.Ping(ctx) }

func (s RedisSource) Put(ctx context.Context, name string, data []byte) error {
	return s.Client.SetBytes(ctx, s.KeyPrefix+name, data)
}

func (s PostgresSource) Ping(ctx context.Context) error { return s.Client.Ping(ctx) }

func (s PostgresSource) Put(ctx context.Context, name string, data []byte) error {
	return s.Client.UpsertPayload(ctx, s.Table, name, data)
}

// Publish copies the four named artifacts from src into dst. Every document
// is decoded before anything is written, so a broken bundle is never
// partially published.
func Publish(ctx context.Context, src Source, dst Store, names config.ArtifactNames) error {
	if err := dst.Ping(ctx); err != nil {
		return fmt.Errorf("%s store unreachable: %w", dst.Name(), err)
	}

	ordered := []string{names.Classifier, names.Transformer, names.Decoder, names.Encoder}
	payloads := make([][]byte, len(ordered))
	for i, name := range ordered {
		raw, err := src.Fetch(ctx, name)
		if err != nil {
			return apperrors.NewArtifactLoadFailedError(name, err)
		}
		if _, err := Decode(raw); err != nil {
			return apperrors.NewArtifactLoadFailedError(name, err)
		}
		payloads[i] = raw
	}

	for i, name := range ordered {
		if err := dst.Put(ctx, name, payloads[i]); err != nil {
			return fmt.Errorf("publish %q to %s: %w", name, dst.Name(), err)
		}
	}
	return nil
}
