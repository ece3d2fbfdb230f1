package artifacts

import (
	"context"
	"fmt"
	"time"

	"career-predictor/internal/common/config"
	apperrors "career-predictor/internal/common/errors"
	"career-predictor/internal/common/logger"
	"career-predictor/internal/common/metrics"

	"golang.org/x/sync/errgroup"
)

// Loader fetches and decodes the four bundle artifacts.
type Loader struct {
	source Source
	names  config.ArtifactNames
	log    logger.Logger
}

func NewLoader(source Source, names config.ArtifactNames, log logger.Logger) *Loader {
	return &Loader{source: source, names: names, log: logger.ForComponent(log, "artifact-loader")}
}

// Load fetches all artifacts concurrently. Any failure aborts the whole load.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	var (
		bundle      Bundle
		classifier  Artifact
		transformer Artifact
		encoder     Artifact
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { classifier, err = l.fetch(gctx, l.names.Classifier); return })
	g.Go(func() (err error) { transformer, err = l.fetch(gctx, l.names.Transformer); return })
	g.Go(func() (err error) { bundle.Decoder, err = l.fetch(gctx, l.names.Decoder); return })
	g.Go(func() (err error) { encoder, err = l.fetch(gctx, l.names.Encoder); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var ok bool
	if bundle.Classifier, ok = classifier.(Classifier); !ok {
		return nil, roleError(l.names.Classifier, classifier, "classifier")
	}
	if bundle.Transformer, ok = transformer.(Transformer); !ok {
		return nil, roleError(l.names.Transformer, transformer, "transformer")
	}
	if bundle.Encoder, ok = encoder.(InterestEncoder); !ok {
		return nil, roleError(l.names.Encoder, encoder, "interest encoder")
	}

	l.log.Info("model bundle loaded", map[string]interface{}{
		"source":         l.source.Name(),
		"classifier":     bundle.Classifier.Kind(),
		"transformer":    bundle.Transformer.Kind(),
		"decoder":        bundle.Decoder.Kind(),
		"encoder":        bundle.Encoder.Kind(),
		"vocabularySize": len(bundle.Encoder.Classes()),
		"sklearnVersion": bundle.SklearnVersion(),
	})
	return &bundle, nil
}

func (l *Loader) fetch(ctx context.Context, name string) (Artifact, error) {
	start := time.Now()
	defer func() {
		metrics.ArtifactLoadDuration.WithLabelValues(name, l.source.Name()).Observe(time.Since(start).Seconds())
	}()

	raw, err := l.source.Fetch(ctx, name)
	if err != nil {
		return nil, apperrors.NewArtifactLoadFailedError(name, err)
	}
	a, err := Decode(raw)
	if err != nil {
		return nil, apperrors.NewArtifactLoadFailedError(name, err)
	}
	l.log.Debug("artifact decoded", map[string]interface{}{"artifact": name, "kind": a.Kind(), "bytes": len(raw)})
	return a, nil
}

func roleError(name string, a Artifact, role string) error {
	return apperrors.NewArtifactLoadFailedError(name, fmt.Errorf("kind %s cannot serve as %s", a.Kind(), role))
}
