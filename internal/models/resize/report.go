package resize

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Comparison struct {
	Engine            string  `json:"engine"`
	MeanAbsoluteError float64 `json:"meanAbsoluteError"`
	PSNR              float64 `json:"psnr"`
	ElapsedMillis     int64   `json:"elapsedMillis"`
}

type CompareReport struct {
	Source       Size         `json:"source"`
	Target       Size         `json:"target"`
	KernelRadius int          `json:"kernelRadius"`
	Elapsed      int64        `json:"elapsedMillis"`
	Comparisons  []Comparison `json:"comparisons"`
}
