package artifacts

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Artifact vectors and labels are stored as raw little-endian arrays,
// the same codec the embedding cache uses on the wire.

func bytesToVectors(data []byte, dim int) ([][]float32, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid dimension %d", dim)
	}
	stride := dim * 4
	if len(data)%stride != 0 {
		return nil, fmt.Errorf("vector data length %d is not a multiple of %d", len(data), stride)
	}

	vecs := make([][]float32, 0, len(data)/stride)
	for off := 0; off < len(data); off += stride {
		vec := make([]float32, dim)
		for i := range vec {
			vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[off+i*4:]))
		}
		vecs = append(vecs, vec)
	}
	return vecs, nil
}

func bytesToInt32s(data []byte) ([]int32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("label data length %d is not a multiple of 4", len(data))
	}
	out := make([]int32, len(data)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}
