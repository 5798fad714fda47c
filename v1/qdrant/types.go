package qdrant

import (
	"fmt"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// SparseVectorName is the named sparse vector in the sparse collection.
const SparseVectorName = "bm25"

// PayloadURN is the payload key that carries the product URN.
const PayloadURN = "urn"

// DensePoint is one product in the dense collection.
type DensePoint struct {
	URN     string
	Vector  []float32
	Payload map[string]any
}

// SparsePoint is one product in the sparse collection.
type SparsePoint struct {
	URN     string
	Indices []uint32
	Values  []float32
	Payload map[string]any
}

// SearchResult is one scored hit. URN is read back from the payload.
type SearchResult struct {
	ID      string
	URN     string
	Score   float32
	Payload map[string]any
}

// Collection summarizes a collection's state.
type Collection struct {
	Name       string
	Status     string
	Vectors    uint64
	Points     uint64
	VectorSize int
	Distance   string
}

// PointID derives a stable point id from a URN so re-indexing a product
// overwrites its previous point.
func PointID(urn string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(urn)).String()
}

// withURN copies payload and adds the URN key.
func withURN(urn string, payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	out[PayloadURN] = urn
	return out
}

func parseSearchResults(resp []*qdrant.ScoredPoint) ([]SearchResult, error) {
	results := make([]SearchResult, 0, len(resp))
	for _, r := range resp {
		id, err := extractPointID(r.Id)
		if err != nil {
			return nil, err
		}
		payload := convertPayload(r.Payload)
		urn, _ := payload[PayloadURN].(string)
		results = append(results, SearchResult{
			ID:      id,
			URN:     urn,
			Score:   r.Score,
			Payload: payload,
		})
	}
	return results, nil
}

func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("[Qdrant] nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("[Qdrant] unexpected PointId type: %T", v)
	}
}

// convertPayload converts Qdrant's protobuf payload to a generic map.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}
