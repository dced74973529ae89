package service

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/viant/afs"
)

const defaultSedDiffBytes = 8192

type Service struct {
	fs      afs.Service
	rules   *RuleSet
	logger  logr.Logger
	target  string
	locked  bool
	useText bool

	sedDiffBytes int
	sedMaxEdits  int
}

func NewService(cfg *Config) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	s := &Service{
		fs:           afs.New(),
		rules:        MustRuleSet(DefaultRules()),
		logger:       logr.Discard(),
		target:       cfg.Target,
		locked:       cfg.LockTarget,
		useText:      !cfg.UseData,
		sedDiffBytes: defaultSedDiffBytes,
	}
	if s.target == "" {
		s.target = DefaultTarget
	}
	if cfg.SedDiffBytes > 0 {
		s.sedDiffBytes = cfg.SedDiffBytes
	}
	if cfg.SedMaxEditsPerFile > 0 {
		s.sedMaxEdits = cfg.SedMaxEditsPerFile
	}
	return s
}

// SetLogger sets the logger used for per-rule statistics.
func (s *Service) SetLogger(logger logr.Logger) { s.logger = logger }

func (s *Service) UseTextField() bool { return s.useText }

// Fix loads the target, applies every rule in order and overwrites the target with the result.
// With DryRun set the target is left untouched and the output carries a diff instead.
func (s *Service) Fix(ctx context.Context, in *FixInput) (*FixOutput, error) {
	if in == nil {
		in = &FixInput{}
	}
	URL := in.URL
	if URL == "" {
		URL = s.target
	}
	URL, err := resolveURL(URL)
	if err != nil {
		return nil, err
	}
	if s.locked {
		target, err := resolveURL(s.target)
		if err != nil {
			return nil, err
		}
		if URL != target {
			return nil, fmt.Errorf("failed to fix %v: %w to %v", URL, ErrTargetLocked, target)
		}
	}
	text, err := load(ctx, s.fs, URL)
	if err != nil {
		return nil, err
	}
	migrated, stats := applySedTransform(text, s.rules)
	for _, stat := range stats {
		s.logger.V(1).Info("rule applied", "rule", stat.Name, "matches", stat.Matches)
	}
	out := &FixOutput{URL: URL, Changed: migrated != text, Rules: stats}
	if in.DryRun {
		out.Edits, out.Diff = applySedPreview(text, migrated, s.sedMaxEdits, s.sedDiffBytes)
		return out, nil
	}
	out.Edits, _ = applySedPreview(text, migrated, 0, 0)
	// the target is rewritten even when no rule matched
	if err = write(ctx, s.fs, URL, migrated); err != nil {
		return nil, err
	}
	out.Written = true
	s.logger.V(1).Info("target written", "url", URL, "changed", out.Changed, "edits", out.Edits)
	return out, nil
}
