package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"
)

func validateSearchInput(collection string, topK int) error {
	if collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if topK <= 0 {
		return fmt.Errorf("topK must be greater than 0")
	}
	return nil
}

// denseParams returns the size and distance of a collection's unnamed dense
// vector. Sparse-only collections report (0, "").
func denseParams(info *qdrant.CollectionInfo) (int, string) {
	params := info.GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return 0, ""
	}
	return int(params.GetSize()), params.GetDistance().String()
}

func derefUint64(v *uint64) uint64 {
	if v != nil {
		return *v
	}
	return 0
}
