package render

// fillBinaryGray converts binary cell data (0/1) into 8-bit intensities.
func fillBinaryGray(buf []byte, cells []uint8) {
	for i, c := range cells {
		if c != 0 {
			buf[i] = 0xff
			continue
		}
		buf[i] = 0
	}
}

// FillRGBA expands single-channel pixels into opaque RGBA by replicating the
// intensity across the color channels. buf must hold 4*len(gray) bytes.
func FillRGBA(buf []byte, gray []byte) {
	for i, v := range gray {
		base := i * 4
		buf[base+0] = v
		buf[base+1] = v
		buf[base+2] = v
		buf[base+3] = 0xff
	}
}

// stampMasked copies every non-zero pixel of src into dst. Both buffers are
// addressed with their own stride; src is placed at (x0, y0) of dst.
func stampMasked(dst []byte, dstStride int, src []byte, srcStride, w, h, x0, y0 int) {
	for y := 0; y < h; y++ {
		row := src[y*srcStride : y*srcStride+w]
		out := dst[(y0+y)*dstStride+x0:]
		for x, v := range row {
			if v != 0 {
				out[x] = v
			}
		}
	}
}
