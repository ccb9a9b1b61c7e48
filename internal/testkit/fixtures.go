package testkit

// Fixed samples shared by tests across packages. The values are frozen so
// the statistics computed from them stay stable; expected results in the
// tests were cross-checked against an independent implementation.
var (
	// NormalA and NormalB are n=40 draws from normal distributions with a
	// shifted mean but common spread. Neither fails the normality check and
	// their variances pass homogeneity.
	NormalA = []float64{
		81.64, 105.66, 114.92, 92.3, 80.07, 99.02, 107.17, 116.47, 81.76, 80.61,
		110.59, 107.11, 123.01, 114.74, 98.47, 95.89, 138.56, 95.67, 88.23, 82.92,
		101.43, 102.18, 94.83, 99.07, 104.1, 110.39, 116.45, 103.15, 73.15, 110.53,
		78.7, 97.43, 77.89, 100.03, 88.32, 103.21, 149.5, 99.27, 112.63, 80.15,
	}
	NormalB = []float64{
		102.68, 116.94, 105.61, 112.55, 108.55, 91.91, 115.46, 94.82, 135.08, 99.42,
		117.29, 107.04, 121.29, 97.97, 121.98, 105.14, 125.95, 116.36, 109.12, 95.3,
		118.52, 114.02, 131.63, 101.34, 115.32, 114.62, 111.24, 110.13, 109.73, 98.02,
		91.78, 101.05, 115.86, 129.67, 121.66, 122.8, 118.66, 117.48, 109.75, 118.57,
	}

	// NormalWide is n=40 normal draws with roughly triple the spread of
	// NormalA; normality holds but variance homogeneity fails hard.
	NormalWide = []float64{
		193.82, 99.26, 82.78, 202.2, 125.01, 157.69, 153.32, 62.89, 223.51, 193.91,
		121.96, 147.86, 119.71, 74.21, 108.96, 130.83, 164.21, 145.92, 116.68, 174.97,
		79.77, 149.68, 164.05, 100.86, 33.42, 73.22, 124.67, 137.75, 183.67, 68.81,
		114.09, 143.2, 106.9, 7.36, 150.29, 218.05, 159.19, 72.72, 95.44, 123.98,
	}

	// SkewedA is n=25 exponential draws; the normality check rejects it
	// decisively. SkewedB has a doubled scale for a detectable shift.
	SkewedA = []float64{
		15.65, 6.54, 42.1, 3.01, 30.7, 18.21, 2.39, 28.33, 1.53, 22.74,
		2.9, 3.8, 22.1, 70.14, 5.29, 10.1, 39.49, 118.04, 34.43, 20.21,
		149.62, 1.91, 78.21, 13.68, 6.23,
	}
	SkewedB = []float64{
		10.03, 29.51, 135.48, 15.95, 69.71, 81.49, 37.27, 63.48, 5.19, 4.92,
		18.45, 91.25, 44.63, 30.17, 70.47, 48.29, 28.51, 126.54, 96.05, 22.39,
		68.34, 59.59, 166.44, 104.58, 27.17,
	}

	// SmallA and SmallB are tight n=10 samples with a clear mean shift and
	// near-identical spread; the Student route fires on them.
	SmallA = []float64{5.1, 4.9, 5.3, 5.0, 4.8, 5.2, 5.1, 4.7, 5.0, 5.4}
	SmallB = []float64{6.2, 6.0, 6.4, 6.1, 5.9, 6.3, 6.0, 5.8, 6.1, 6.5}
)
