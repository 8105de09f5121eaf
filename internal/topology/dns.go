package topology

import (
	"encoding/json"
	"fmt"
)

// ChangeBatch is the Route53 change-resource-record-sets payload. The field
// names and layout are a fixed wire format consumed by the AWS CLI.
type ChangeBatch struct {
	Comment string   `json:"Comment"`
	Changes []Change `json:"Changes"`
}

// Change is one record change.
type Change struct {
	Action            string            `json:"Action"`
	ResourceRecordSet ResourceRecordSet `json:"ResourceRecordSet"`
}

// ResourceRecordSet is a plain (non-alias) record set.
type ResourceRecordSet struct {
	Name            string           `json:"Name"`
	Type            string           `json:"Type"`
	TTL             int64            `json:"TTL"`
	ResourceRecords []ResourceRecord `json:"ResourceRecords"`
}

// ResourceRecord holds one record value.
type ResourceRecord struct {
	Value string `json:"Value"`
}

// UpsertA returns a batch that creates or replaces an A record.
func UpsertA(name, value string, ttl int64, comment string) ChangeBatch {
	return ChangeBatch{
		Comment: comment,
		Changes: []Change{{
			Action: "UPSERT",
			ResourceRecordSet: ResourceRecordSet{
				Name:            name,
				Type:            "A",
				TTL:             ttl,
				ResourceRecords: []ResourceRecord{{Value: value}},
			},
		}},
	}
}

// JSON encodes the batch on a single line.
func (b ChangeBatch) JSON() (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("failed to encode change batch: %w", err)
	}
	return string(data), nil
}
