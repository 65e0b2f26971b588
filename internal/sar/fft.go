package sar

import "gonum.org/v1/gonum/dsp/fourier"

// fftForward returns the unnormalized DFT of src.
func fftForward(src []complex128) []complex128 {
	fft := fourier.NewCmplxFFT(len(src))
	return fft.Coefficients(nil, src)
}

// fftInverse returns the inverse DFT of coeff, normalized by 1/N so that
// fftInverse(fftForward(x)) reconstructs x.
func fftInverse(coeff []complex128) []complex128 {
	fft := fourier.NewCmplxFFT(len(coeff))
	seq := fft.Sequence(nil, coeff)
	scale := complex(1/float64(len(coeff)), 0)
	for i := range seq {
		seq[i] *= scale
	}
	return seq
}

// fft2D computes the two-dimensional DFT of a row-major rows x cols buffer:
// a row-wise pass followed by a column-wise pass.
func fft2D(rows, cols int, data []complex128) []complex128 {
	out := make([]complex128, len(data))
	rowFFT := fourier.NewCmplxFFT(cols)
	for r := 0; r < rows; r++ {
		rowFFT.Coefficients(out[r*cols:(r+1)*cols], data[r*cols:(r+1)*cols])
	}
	colFFT := fourier.NewCmplxFFT(rows)
	col := make([]complex128, rows)
	spec := make([]complex128, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			col[r] = out[r*cols+c]
		}
		colFFT.Coefficients(spec, col)
		for r := 0; r < rows; r++ {
			out[r*cols+c] = spec[r]
		}
	}
	return out
}

// ifft2D inverts fft2D, normalized by 1/(rows*cols).
func ifft2D(rows, cols int, data []complex128) []complex128 {
	out := make([]complex128, len(data))
	rowFFT := fourier.NewCmplxFFT(cols)
	for r := 0; r < rows; r++ {
		rowFFT.Sequence(out[r*cols:(r+1)*cols], data[r*cols:(r+1)*cols])
	}
	colFFT := fourier.NewCmplxFFT(rows)
	col := make([]complex128, rows)
	seq := make([]complex128, rows)
	scale := complex(1/float64(rows*cols), 0)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			col[r] = out[r*cols+c]
		}
		colFFT.Sequence(seq, col)
		for r := 0; r < rows; r++ {
			out[r*cols+c] = seq[r] * scale
		}
	}
	return out
}
