package datasets

import (
	"fmt"

	"github.com/juglab/portfolio/internal/dataset"
)

var trainTest = dataset.Files{
	"train": {"train_data.npz"},
	"test":  {"test_data.npz"},
}

const denoisegCitation = "Buchholz, T.O., Prakash, M., Schmidt, D., Krull, A., Jug, " +
	"F.: Denoiseg: joint denoising and segmentation. In: European " +
	"Conference on Computer Vision (ECCV). pp. 324–337. Springer (2020) 8, 9"

// zenodo builds the lookup for a family hosted as one Zenodo record per
// noise level. remote is the archive name prefix on Zenodo, local the
// prefix of the file name on disk.
func zenodo(remote, local string, records map[dataset.NoiseLevel]string, sums map[dataset.NoiseLevel]string) dataset.VariantFunc {
	return func(level dataset.NoiseLevel) dataset.Variant {
		return dataset.Variant{
			URL:      fmt.Sprintf("https://zenodo.org/record/%s/files/%s_%s.zip?download=1", records[level], remote, level),
			MD5:      sums[level],
			FileName: fmt.Sprintf("%s_%s.zip", local, level),
		}
	}
}

var dsb2018 = family{
	base: "DSB2018",
	template: dataset.Spec{
		Description: "From the Kaggle 2018 Data Science Bowl challenge, the " +
			"training and validation sets consist of 3800 and 670 patches " +
			"respectively, while the test set counts 50 images.\n" +
			"Original data: " +
			"https://www.kaggle.com/competitions/data-science-bowl-2018/data",
		License: "GPL-3.0",
		Citation: "Caicedo, J.C., Goodman, A., Karhohs, K.W. et al. Nucleus " +
			"segmentation across imaging experiments: the 2018 Data Science " +
			"Bowl. Nat Methods 16, 1247-1253 (2019). " +
			"https://doi.org/10.1038/s41592-019-0612-7",
		Files: trainTest,
	},
	lookup: zenodo("DSB2018", "DSB2018",
		map[dataset.NoiseLevel]string{dataset.N0: "5156969", dataset.N10: "5156977", dataset.N20: "5156983"},
		map[dataset.NoiseLevel]string{
			dataset.N0:  "80513b1eda8e08df1d8dcc5543ad1ad1",
			dataset.N10: "aa16c116949d8b8cd573d7bbeacbd0c3",
			dataset.N20: "81abc17313582a4f04f501e3dce1fe88",
		}),
}

var flywing = family{
	base: "Flywing",
	template: dataset.Spec{
		Description: "This dataset consist of 1428 training and 252 " +
			"validation patches of a membrane labeled fly wing. The test set " +
			"is comprised of 50 additional images.",
		License:  "CC BY-SA 4.0",
		Citation: denoisegCitation,
		Files:    trainTest,
	},
	lookup: zenodo("Flywing", "Flywing",
		map[dataset.NoiseLevel]string{dataset.N0: "5156991", dataset.N10: "5156993", dataset.N20: "5156995"},
		map[dataset.NoiseLevel]string{
			dataset.N0:  "09e0af44f0f9862abae3816d7069604a",
			dataset.N10: "64d5300073e02c9651ec88c368c302e8",
			dataset.N20: "b8fbb96026bd10fd034b8c1270f6edbb",
		}),
}

// Zenodo names these archives Mouse_nX.zip; they are stored locally as
// MouseNuclei_nX.zip.
var mouseNuclei = family{
	base: "MouseNuclei",
	template: dataset.Spec{
		Description: "A dataset depicting diverse and non-uniformly " +
			"clustered nuclei in the mouse skull, consisting of 908 training " +
			"and 160 validation patches. The test set counts 67 additional images",
		License:  "CC BY-SA 4.0",
		Citation: denoisegCitation,
		Files:    trainTest,
	},
	lookup: zenodo("Mouse", "MouseNuclei",
		map[dataset.NoiseLevel]string{dataset.N0: "5157001", dataset.N10: "5157003", dataset.N20: "5157008"},
		map[dataset.NoiseLevel]string{
			dataset.N0:  "b747d013cba186a02c97937acef4b972",
			dataset.N10: "0b0776fa205057b49920b0ec3d1a5fc9",
			dataset.N20: "6e9d895ba3ac2c225883ed3ec94342f8",
		}),
}
