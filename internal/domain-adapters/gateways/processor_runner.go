package gateways

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/anvil-mc/anvil/internal/domain/entities"
	"github.com/anvil-mc/anvil/internal/domain/interfaces"
)

// ProcessorRunner executes a profile's post-processing steps through an
// external java runtime. Completion is recorded in a marker file so re-runs
// skip the whole stage.
type ProcessorRunner struct {
	defaultTimeout time.Duration
	archive        *ZipReader
	logger         interfaces.Logger
}

// NewProcessorRunner creates a new processor runner
func NewProcessorRunner(logger interfaces.Logger) *ProcessorRunner {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ProcessorRunner{
		defaultTimeout: 30 * time.Minute,
		archive:        NewZipReader(),
		logger:         logger,
	}
}

// IsPatched reports whether a previous run already completed the patch stage
// for this profile.
func (r *ProcessorRunner) IsPatched(profile *entities.Profile, cfg entities.PatchConfig) bool {
	_, err := os.Stat(r.markerPath(profile, cfg))
	return err == nil
}

// Apply runs every client-side processor in manifest order, relaying progress
// through events. The first failing processor aborts the stage.
func (r *ProcessorRunner) Apply(ctx context.Context, profile *entities.Profile, cfg entities.PatchConfig, legacyAPI bool, events interfaces.Observer) error {
	var procs []entities.Processor
	for _, p := range profile.Install.Processors {
		if p.ClientSide() {
			procs = append(procs, p)
		}
	}

	for i, p := range procs {
		events.Patch(fmt.Sprintf("processor %d/%d: %s", i+1, len(procs), p.Jar))

		args, err := r.commandArgs(p, profile, cfg, legacyAPI)
		if err != nil {
			events.Error(err.Error())
			return err
		}
		if err := r.run(ctx, cfg.JavaPath, args); err != nil {
			events.Error(err.Error())
			return fmt.Errorf("processor %s failed: %w", p.Jar, err)
		}
	}

	marker := r.markerPath(profile, cfg)
	if err := os.MkdirAll(filepath.Dir(marker), 0750); err != nil {
		return fmt.Errorf("failed to create marker directory: %w", err)
	}
	if err := os.WriteFile(marker, []byte(time.Now().UTC().Format(time.RFC3339)+"\n"), 0640); err != nil {
		return fmt.Errorf("failed to record patch completion: %w", err)
	}
	r.logger.Debug("patch stage complete",
		interfaces.F("processors", len(procs)),
		interfaces.F("legacyAPI", legacyAPI))
	return nil
}

func (r *ProcessorRunner) markerPath(profile *entities.Profile, cfg entities.PatchConfig) string {
	id := profile.Version.ID
	if id == "" {
		id = profile.Install.Version
	}
	return filepath.Join(cfg.Root, "versions", id+".patched")
}

// commandArgs assembles the java argument vector for one processor: class
// path from maven coordinates, main class from the jar's manifest, processor
// args with substitution variables resolved.
func (r *ProcessorRunner) commandArgs(p entities.Processor, profile *entities.Profile, cfg entities.PatchConfig, legacyAPI bool) ([]string, error) {
	jarPath, err := libraryPath(cfg.LibrariesDir, p.Jar)
	if err != nil {
		return nil, err
	}

	mainClass, err := r.mainClass(jarPath)
	if err != nil {
		return nil, err
	}

	cp := []string{jarPath}
	for _, coord := range p.Classpath {
		path, err := libraryPath(cfg.LibrariesDir, coord)
		if err != nil {
			return nil, err
		}
		cp = append(cp, path)
	}

	args := []string{"-cp", strings.Join(cp, string(os.PathListSeparator)), mainClass}
	for _, a := range p.Args {
		resolved, err := r.substituteArg(a, profile, cfg, legacyAPI)
		if err != nil {
			return nil, err
		}
		args = append(args, resolved)
	}
	return args, nil
}

// substituteArg resolves {VARIABLE} placeholders and [maven:coordinate]
// references in a processor argument.
func (r *ProcessorRunner) substituteArg(arg string, profile *entities.Profile, cfg entities.PatchConfig, legacyAPI bool) (string, error) {
	if strings.HasPrefix(arg, "{") && strings.HasSuffix(arg, "}") {
		key := arg[1 : len(arg)-1]
		switch key {
		case "SIDE":
			return "client", nil
		case "ROOT":
			return cfg.Root, nil
		case "MINECRAFT_JAR":
			return cfg.ClientJar, nil
		case "MINECRAFT_JSON":
			return cfg.ClientJSON, nil
		}
		if v, ok := profile.Install.Data[key]; ok {
			// Archive-relative values like "/data/client.lzma" refer to the
			// payload the install stage already extracted beside the loader
			// library; they are not filesystem paths.
			if strings.HasPrefix(v.Client, "/") {
				return r.extractedDataPath(profile, cfg, legacyAPI)
			}
			return r.substituteArg(v.Client, profile, cfg, legacyAPI)
		}
		return "", fmt.Errorf("unknown processor variable %s", arg)
	}

	if strings.HasPrefix(arg, "[") && strings.HasSuffix(arg, "]") {
		return libraryPath(cfg.LibrariesDir, arg[1:len(arg)-1])
	}
	return arg, nil
}

// extractedDataPath resolves the on-disk location of the installer's client
// payload: the loader library's maven path with the -clientdata.lzma suffix,
// matching where the install stage put it.
func (r *ProcessorRunner) extractedDataPath(profile *entities.Profile, cfg entities.PatchConfig, legacyAPI bool) (string, error) {
	prefix := entities.ModernLoaderPrefix
	if legacyAPI {
		prefix = entities.LegacyLoaderPrefix
	}
	for _, lib := range profile.Version.Libraries {
		if strings.HasPrefix(lib.Name, prefix) {
			rel, err := entities.MavenPath(lib.Name)
			if err != nil {
				return "", fmt.Errorf("invalid loader library coordinate: %w", err)
			}
			rel = strings.TrimSuffix(rel, ".jar") + "-clientdata.lzma"
			return filepath.Join(cfg.LibrariesDir, filepath.FromSlash(rel)), nil
		}
	}
	return "", fmt.Errorf("no loader library in the runtime manifest to resolve the client payload against")
}

// mainClass reads the Main-Class attribute from a jar's manifest.
func (r *ProcessorRunner) mainClass(jarPath string) (string, error) {
	data, err := r.archive.ReadEntry(jarPath, "META-INF/MANIFEST.MF")
	if err != nil {
		return "", fmt.Errorf("failed to read manifest of %s: %w", filepath.Base(jarPath), err)
	}
	if data == nil {
		return "", fmt.Errorf("%s has no manifest", filepath.Base(jarPath))
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "Main-Class:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Main-Class:")), nil
		}
	}
	return "", fmt.Errorf("%s declares no Main-Class", filepath.Base(jarPath))
}

func (r *ProcessorRunner) run(ctx context.Context, javaPath string, args []string) error {
	execCtx, cancel := context.WithTimeout(ctx, r.defaultTimeout)
	defer cancel()

	//nolint:gosec // G204: Processor invocation is driven by the installer profile
	cmd := exec.CommandContext(execCtx, javaPath, args...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("processor finished",
		interfaces.F("duration", time.Since(start)),
		interfaces.F("error", err))

	if err != nil {
		return fmt.Errorf("%w: %s", err, tailLines(output.String(), 5))
	}
	return nil
}

// tailLines returns the last n non-empty lines of command output.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}

func libraryPath(librariesDir, coord string) (string, error) {
	rel, err := entities.MavenPath(coord)
	if err != nil {
		return "", err
	}
	return filepath.Join(librariesDir, filepath.FromSlash(rel)), nil
}
