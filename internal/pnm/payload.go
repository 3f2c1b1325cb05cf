package pnm

import (
	"bufio"
	"fmt"
	"io"
)

// readPayload fills pix from r according to the body encoding of f.
// Text samples are truncated to their low 8 bits.
func readPayload(r *bufio.Reader, f Format, pix []uint8) error {
	if f.Binary() {
		if _, err := io.ReadFull(r, pix); err != nil {
			return fmt.Errorf("%w: want %d bytes: %v", ErrTruncatedPayload, len(pix), err)
		}
		return nil
	}

	t := tokenizer{r: r}
	for i := range pix {
		v, err := t.readInt()
		if err != nil {
			return fmt.Errorf("%w: sample %d of %d: %v", ErrMalformedPayload, i, len(pix), err)
		}
		pix[i] = uint8(v)
	}
	return nil
}

// writeBinary emits a binary header for magic followed by pix verbatim.
func writeBinary(w io.Writer, magic string, width, height, maxValue int, pix []uint8) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, width, height, maxValue); err != nil {
		return err
	}
	if _, err := bw.Write(pix); err != nil {
		return err
	}
	return bw.Flush()
}

// flipRows mirrors rows of pix left to right. Each pixel is channels
// samples wide.
func flipRows(pix []uint8, width, height, channels int) {
	for y := 0; y < height; y++ {
		row := pix[y*width*channels : (y+1)*width*channels]
		for x := 0; x < width/2; x++ {
			l := x * channels
			r := (width - 1 - x) * channels
			for c := 0; c < channels; c++ {
				row[l+c], row[r+c] = row[r+c], row[l+c]
			}
		}
	}
}

// flipColumns mirrors pix top to bottom.
func flipColumns(pix []uint8, width, height, channels int) {
	stride := width * channels
	tmp := make([]uint8, stride)
	for y := 0; y < height/2; y++ {
		top := pix[y*stride : (y+1)*stride]
		bottom := pix[(height-1-y)*stride : (height-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
