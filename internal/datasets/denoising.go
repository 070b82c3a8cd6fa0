package datasets

import "github.com/juglab/portfolio/internal/dataset"

var bsd68 = dataset.Spec{
	Name:     "N2V_BSD68",
	URL:      "https://download.fht.org/jug/n2v/BSD68_reproducibility.zip",
	FileName: "BSD68_reproducibility.zip",
	MD5:      "292c29895fa56ef7226487005b5955a2",
	Description: "This dataset is taken from K. Zhang et al (TIP, 2017).\n" +
		"It consists of 400 gray-scale 180x180 images (cropped from the " +
		"BSD dataset) and splitted between training and validation, and " +
		"68 gray-scale test images (BSD68).\n" +
		"All images were corrupted with Gaussian noise with standard " +
		"deviation of 25 pixels. The test dataset contains the uncorrupted " +
		"images as well.\n" +
		"Original dataset: https://www2.eecs.berkeley.edu/Research/Projects/CS/vision/bsds/",
	License: "Unknown",
	Citation: `D. Martin, C. Fowlkes, D. Tal and J. Malik, "A database of ` +
		"human segmented natural images and its application to " +
		"evaluating segmentation algorithms and measuring ecological " +
		`statistics," Proceedings Eighth IEEE International ` +
		"Conference on Computer Vision. ICCV 2001, Vancouver, BC, " +
		"Canada, 2001, pp. 416-423 vol.2, doi: " +
		"10.1109/ICCV.2001.937655.",
	Files: dataset.Files{
		"test":  {"bsd68_gaussian25.npy", "bsd68_groundtruth.npy"},
		"train": {"DCNN400_train_gaussian25.npy"},
		"val":   {"DCNN400_validation_gaussian25.npy"},
	},
}

var sem = dataset.Spec{
	Name:        "N2V_SEM",
	URL:         "https://download.fht.org/jug/n2v/SEM.zip",
	FileName:    "SEM.zip",
	MD5:         "953a815333805a423b7019bd16cc3341",
	Description: "Cropped images from a SEM dataset from T.-O. Buchholz et al (Methods Cell Biol, 2020).",
	License:     "CC-BY",
	Citation: "T.-O. Buchholz, A. Krull, R. Shahidi, G. Pigino, G. Jékely, " +
		`F. Jug, "Content-aware image restoration for electron ` +
		`microscopy", Methods Cell Biol 152, 277-289`,
	Files: dataset.Files{
		"SEM": {"train.tif", "validation.tif"},
	},
}

var rgb = dataset.Spec{
	Name:        "N2V_RGB",
	URL:         "https://download.fht.org/jug/n2v/RGB.zip",
	FileName:    "RGB.zip",
	MD5:         "ad80d2fee3ae0a93208687e30ad2b63a",
	Description: "Banner of the CVPR 2019 conference with extra noise.",
	License:     "CC0",
	Citation: `A. Krull, T.-O. Buchholz and F. Jug, "Noise2Void - Learning ` +
		`Denoising From Single Noisy Images," 2019 IEEE/CVF ` +
		"Conference on Computer Vision and Pattern Recognition (CVPR), " +
		"2019, pp. 2124-2132",
	Files: dataset.Files{
		"RGB": {"longbeach.png"},
	},
}
