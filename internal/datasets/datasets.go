package datasets

import (
	"fmt"

	"github.com/juglab/portfolio/internal/dataset"
	"github.com/juglab/portfolio/internal/registry"
)

// Collection names, in catalog order.
const (
	Denoising    = "Denoising"
	DenoiSeg     = "DenoiSeg"
	Segmentation = "Segmentation"
)

// Register inserts every built-in entry into t.
func Register(t *registry.Table) error {
	for _, spec := range []dataset.Spec{bsd68, sem, rgb} {
		if err := t.Spec(Denoising, spec); err != nil {
			return err
		}
	}

	for _, fam := range []family{dsb2018, flywing, mouseNuclei} {
		if err := registerFamily(t, DenoiSeg, fam); err != nil {
			return err
		}
	}

	return registerFamily(t, Segmentation, dsb2018)
}

// Table returns a fresh, sealed table holding the built-in entries.
func Table() (*registry.Table, error) {
	t := registry.New()
	if err := Register(t); err != nil {
		return nil, err
	}
	t.Seal()
	return t, nil
}

// family is a set of entries that differ only by noise level.
type family struct {
	base     string
	template dataset.Spec
	lookup   dataset.VariantFunc
}

func registerFamily(t *registry.Table, collection string, fam family) error {
	for _, level := range dataset.NoiseLevels {
		e, err := dataset.Family(fam.base, fam.template, fam.lookup, level)
		if err != nil {
			return fmt.Errorf("building %s %s: %w", fam.base, level, err)
		}
		if err := t.Spec(collection, e.Spec()); err != nil {
			return err
		}
	}
	return nil
}
