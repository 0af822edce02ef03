package main

import (
	"errors"
	"fmt"

	"github.com/lkarlslund/screenwatch/internal/config"
	"github.com/lkarlslund/screenwatch/internal/monitor"
	"github.com/lkarlslund/screenwatch/internal/vision"
)

// templateSet holds the loaded target and control templates.
type templateSet struct {
	target   *vision.Template
	controls []*vision.Template
}

func loadTemplates(cfg *config.Config) (*templateSet, error) {
	target, err := vision.LoadTemplate(cfg.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", config.KeyImageName, err)
	}

	set := &templateSet{target: target}
	for _, path := range cfg.ControlImagePaths {
		t, err := vision.LoadTemplate(path)
		if err != nil {
			set.Close()
			return nil, fmt.Errorf("load control image: %w", err)
		}
		set.controls = append(set.controls, t)
	}
	return set, nil
}

func (s *templateSet) matcher(threshold float64) *vision.Matcher {
	return vision.NewMatcher(s.target, threshold)
}

func (s *templateSet) locators(threshold float64) []monitor.Locator {
	out := make([]monitor.Locator, 0, len(s.controls))
	for _, t := range s.controls {
		out = append(out, vision.NewFinder(t, threshold))
	}
	return out
}

func (s *templateSet) Close() error {
	var errs []error
	if s.target != nil {
		errs = append(errs, s.target.Close())
	}
	for _, t := range s.controls {
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}
