package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

func GenerateID() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateRequestID produces the correlation ID attached to every request log line
func GenerateRequestID() string {
	id, err := gonanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 16)
	if err != nil {
		return GenerateID()
	}
	return id
}
