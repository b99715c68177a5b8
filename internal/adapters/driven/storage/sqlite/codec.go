package sqlite

import "encoding/json"

// Blobs are stored as JSON text so the table stays inspectable with any
// sqlite shell, matching the transparency of the file adapter.

func encode(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decode(data string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(data), &value); err != nil {
		return nil, err
	}
	return value, nil
}
