//go:build integration

package integration_test

import "testing"

func TestDenoisingDatasets(t *testing.T) {
	p := portfolio(t)
	for e := range p.Denoising().All() {
		t.Run(e.Name(), func(t *testing.T) {
			fetchVerified(t, e)
		})
	}
}

func TestDenoiSegDatasets(t *testing.T) {
	p := portfolio(t)
	small := map[string]bool{"DSB2018_n0": true, "Flywing_n0": true, "MouseNuclei_n0": true}

	for e := range p.DenoiSeg().All() {
		t.Run(e.Name(), func(t *testing.T) {
			if !small[e.Name()] {
				requireLarge(t)
			}
			fetchVerified(t, e)
		})
	}
}

func TestSegmentationDatasets(t *testing.T) {
	requireLarge(t)
	p := portfolio(t)
	for e := range p.Segmentation().All() {
		t.Run(e.Name(), func(t *testing.T) {
			fetchVerified(t, e)
		})
	}
}
