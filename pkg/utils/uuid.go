package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateID gera um identificador curto, usado nos números de fatura do sandbox
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}
