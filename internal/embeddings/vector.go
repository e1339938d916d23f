package embeddings

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/evelynxu/marksearch/internal/constants"
	interrors "github.com/evelynxu/marksearch/internal/errors"
)

func EmbeddingToBytes(embedding []float32) []byte {
	buf := new(bytes.Buffer)
	for _, v := range embedding {
		binary.Write(buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

func BytesToEmbedding(data []byte) ([]float32, error) {
	if len(data)%constants.BytesPerFloat32 != 0 {
		return nil, interrors.ErrInvalidEmbeddingLength
	}

	embedding := make([]float32, len(data)/constants.BytesPerFloat32)
	buf := bytes.NewReader(data)
	for i := range embedding {
		if err := binary.Read(buf, binary.LittleEndian, &embedding[i]); err != nil {
			return nil, err
		}
	}
	return embedding, nil
}

// CosineSimilarity returns dot(a, b) / (|a| * |b|) in [-1, 1]. Vectors of
// different lengths or zero magnitude score 0; the caller decides whether a
// length mismatch should exclude the record.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
