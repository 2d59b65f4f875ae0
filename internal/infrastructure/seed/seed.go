package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Fixture describes catalog entries and entitlement grants to load at
// startup. In production the course-content and payment services write
// both stores; the fixture exists for dev and standalone deployments.
type Fixture struct {
	Courses      []Course `yaml:"courses"`
	Entitlements []Grant  `yaml:"entitlements"`
}

type Course struct {
	ID        string  `yaml:"id"`
	Videos    []Asset `yaml:"videos"`
	Resources []Asset `yaml:"resources"`
}

type Asset struct {
	Filename   string `yaml:"filename"`
	StorageKey string `yaml:"storage_key"`
}

type Grant struct {
	UserID   string `yaml:"user_id"`
	CourseID string `yaml:"course_id"`
}

// Load reads a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed yaml: %w", err)
	}
	return &f, nil
}

// Apply registers the fixture's assets and grants. Storage keys default
// to the public filename when omitted.
func Apply(ctx context.Context, f *Fixture, catalog ports.CatalogRepository, entitlements ports.EntitlementRepository, log *zap.SugaredLogger) error {
	var assets, grants int

	for _, course := range f.Courses {
		if course.ID == "" {
			return fmt.Errorf("seed course without id")
		}
		courseID := domain.CourseID(course.ID)

		register := func(a Asset, kind domain.AssetKind) error {
			if a.Filename == "" {
				return fmt.Errorf("seed asset without filename in course %s", course.ID)
			}
			key := a.StorageKey
			if key == "" {
				key = a.Filename
			}
			asset := &domain.MediaAsset{
				OwnerCourseID: courseID,
				StorageKey:    key,
				Kind:          kind,
			}
			if err := catalog.Register(ctx, a.Filename, asset); err != nil {
				return fmt.Errorf("failed to register %s: %w", a.Filename, err)
			}
			assets++
			return nil
		}

		for _, a := range course.Videos {
			if err := register(a, domain.KindVideo); err != nil {
				return err
			}
		}
		for _, a := range course.Resources {
			if err := register(a, domain.KindResource); err != nil {
				return err
			}
		}
	}

	now := time.Now()
	for _, g := range f.Entitlements {
		if g.UserID == "" || g.CourseID == "" {
			return fmt.Errorf("seed entitlement missing user_id or course_id")
		}
		ent := &domain.Entitlement{
			UserID:    domain.UserID(g.UserID),
			CourseID:  domain.CourseID(g.CourseID),
			GrantedAt: now,
		}
		if err := entitlements.Grant(ctx, ent); err != nil {
			return fmt.Errorf("failed to grant entitlement: %w", err)
		}
		grants++
	}

	log.Infow("seed fixture applied",
		"assets", assets,
		"entitlements", grants,
	)
	return nil
}
