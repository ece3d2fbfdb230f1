// cmd/tools/bundle-inspect/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"career-predictor/internal/artifacts"
	"career-predictor/internal/common/config"
	"career-predictor/internal/common/logger"
	"career-predictor/internal/models"
	"career-predictor/internal/predictor"
	"career-predictor/pkg/registry"
)

func main() {
	inspectCmd := flag.NewFlagSet("inspect", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	registryCmd := flag.NewFlagSet("registry", flag.ExitOnError)
	publishCmd := flag.NewFlagSet("publish", flag.ExitOnError)

	inspectConfig := inspectCmd.String("config", "configs/config.yaml", "Path to config file")
	inspectJSON := inspectCmd.Bool("json", false, "Print the report as JSON")
	validateConfig := validateCmd.String("config", "configs/config.yaml", "Path to config file")
	registryOut := registryCmd.String("out", "configs/schema-registry.json", "Where to write the default registry")
	publishConfig := publishCmd.String("config", "configs/config.yaml", "Path to config file naming the target store")
	publishFrom := publishCmd.String("from", "models", "Directory holding the artifacts to publish")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "inspect":
		inspectCmd.Parse(os.Args[2:])
		r, err := run(*inspectConfig)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if *inspectJSON {
			out, _ := json.MarshalIndent(r, "", "  ")
			fmt.Println(string(out))
			return
		}
		r.print()

	case "validate":
		validateCmd.Parse(os.Args[2:])
		r, err := run(*validateConfig)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		r.print()
		if r.Problem != "" {
			fmt.Println("Bundle validation failed.")
			os.Exit(1)
		}
		fmt.Println("Bundle validation passed.")

	case "registry":
		registryCmd.Parse(os.Args[2:])
		reg := registry.Default()
		reg.LastUpdated = time.Now().Format(time.RFC3339)
		if err := registry.SaveRegistry(*registryOut, reg); err != nil {
			fmt.Printf("Error writing registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote default registry to %s\n", *registryOut)

	case "publish":
		publishCmd.Parse(os.Args[2:])
		if err := publish(*publishConfig, *publishFrom); err != nil {
			fmt.Printf("Error publishing bundle: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Published bundle from %s\n", *publishFrom)

	case "help":
		fallthrough
	default:
		help()
	}
}

func run(configPath string) (*report, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	reg, err := registry.LoadRegistry(cfg.Model.SchemaRegistryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema registry: %w", err)
	}

	source, closeSource, err := artifacts.OpenSource(cfg)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Model.Artifacts.Timeout))
	defer cancel()

	bundle, err := artifacts.NewLoader(source, cfg.Model.Artifacts.Names, logger.NewNoOpLogger()).Load(ctx)
	if err != nil {
		return nil, err
	}

	r := inspect(reg, bundle)
	r.Source = source.Name()
	r.ExpectedSklearnVersion = cfg.Model.ExpectedSklearnVersion
	return r, nil
}

// publish copies a local bundle into the redis or postgres store named by
// the config's artifact source.
func publish(configPath, from string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	target, closeTarget, err := artifacts.OpenSource(cfg)
	if err != nil {
		return err
	}
	defer closeTarget()

	store, ok := target.(artifacts.Store)
	if !ok {
		return fmt.Errorf("artifact source %q is read-only", target.Name())
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Model.Artifacts.Timeout))
	defer cancel()
	return artifacts.Publish(ctx, artifacts.FileSource{Dir: from}, store, cfg.Model.Artifacts.Names)
}

type report struct {
	Source                 string                 `json:"source"`
	SklearnVersion         string                 `json:"sklearn_version"`
	ExpectedSklearnVersion string                 `json:"expected_sklearn_version"`
	VocabularySize         int                    `json:"vocabulary_size"`
	NumDim                 int                    `json:"num_dim"`
	CatDim                 int                    `json:"cat_dim"`
	MlbDim                 int                    `json:"mlb_dim"`
	ExpectedFeatures       *int                   `json:"model_expected_features"`
	Strategy               string                 `json:"strategy,omitempty"`
	Problem                string                 `json:"problem,omitempty"`
	Diagnostics            map[string]interface{} `json:"diagnostics,omitempty"`
}

// inspect runs a probe record through assembly and inference. The probe has
// zero scores and the first allowed value of every categorical field.
func inspect(reg *registry.Registry, bundle *artifacts.Bundle) *report {
	r := &report{
		SklearnVersion: bundle.SklearnVersion(),
		VocabularySize: len(bundle.Encoder.Classes()),
	}

	rec := &models.CandidateRecord{Scores: map[string]float64{}, Interests: []string{}}
	for _, f := range reg.CategoricalFields {
		rec.SetCategorical(f.Name, f.Allowed[0])
	}

	asm, err := predictor.NewAssembler(reg, bundle).Assemble(rec)
	if err != nil {
		r.Problem = err.Error()
		var drift *predictor.SchemaDriftError
		if errors.As(err, &drift) {
			r.Problem = drift.Message
			r.Diagnostics = drift.Diagnostics
		}
		return r
	}

	r.NumDim, r.CatDim, r.MlbDim = asm.Widths.Numeric, asm.Widths.Categorical, asm.Widths.Interests
	if asm.ExpectedKnown {
		n := asm.Expected
		r.ExpectedFeatures = &n
	}
	r.Strategy = asm.Selection.Label()

	if _, err := predictor.NewInferencer(bundle).Infer(asm.X); err != nil {
		r.Problem = err.Error()
	}
	return r
}

func (r *report) print() {
	expected := "unknown"
	if r.ExpectedFeatures != nil {
		expected = fmt.Sprint(*r.ExpectedFeatures)
	}
	fmt.Printf("Source:                 %s\n", r.Source)
	fmt.Printf("sklearn version:        %s (expected %s)\n", r.SklearnVersion, r.ExpectedSklearnVersion)
	fmt.Printf("Interest vocabulary:    %d\n", r.VocabularySize)
	if r.Diagnostics != nil {
		out, _ := json.MarshalIndent(r.Diagnostics, "", "  ")
		fmt.Printf("Problem:                %s\n%s\n", r.Problem, out)
		return
	}
	fmt.Printf("Widths (num/cat/mlb):   %d / %d / %d\n", r.NumDim, r.CatDim, r.MlbDim)
	fmt.Printf("Expected features:      %s\n", expected)
	fmt.Printf("Selected strategy:      %s\n", r.Strategy)
	if r.Problem != "" {
		fmt.Printf("Problem:                %s\n", r.Problem)
	}
}

func help() {
	fmt.Print(`
Usage: bundle-inspect <command> [flags]

Commands:
  inspect   Load the configured bundle and report how a request would be assembled
  validate  Like inspect, but exit non-zero on a shape mismatch or transform failure
  registry  Write the built-in schema registry as a JSON overlay
  publish   Copy a local bundle into the redis or postgres store from the config
  help      Show this help message

Examples:
  bundle-inspect inspect -config configs/config.yaml -json
  bundle-inspect validate -config configs/config.yaml
  bundle-inspect registry -out configs/schema-registry.json
  bundle-inspect publish -config configs/config.yaml -from models

Use 'bundle-inspect <command> -h' for more information about a command.
`)
}
