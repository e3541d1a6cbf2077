package cliErrors

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
)

// Códigos de erro da linha de comando
const (
	// Erros de validação
	ErrInvalidInput  = "VAL_001" // Mês ou ano inválido
	ErrMissingAction = "VAL_002" // Nenhuma ação informada
	ErrInvalidFormat = "VAL_003" // Formato de saída inválido

	// Erros de dados
	ErrNotFound = "DAT_001" // Registro não encontrado

	// Erros do servidor
	ErrInternal          = "SRV_001" // Erro interno
	ErrDatabaseOperation = "SRV_002" // Falha ao executar query
	ErrConnection        = "SRV_003" // Falha ao conectar no banco

	// Erros de configuração
	ErrConfiguration = "CFG_001" // Credenciais ausentes ou inválidas
)

// Códigos de saída do processo
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInvalidInput  = 2
	ExitQuery         = 3
	ExitNotFound      = 4
	ExitConfiguration = 5
)

// Mapeamento de códigos de erro para código de saída
var exitCodeMap = map[string]int{
	ErrInvalidInput:      ExitInvalidInput,
	ErrMissingAction:     ExitInvalidInput,
	ErrInvalidFormat:     ExitInvalidInput,
	ErrNotFound:          ExitNotFound,
	ErrInternal:          ExitFailure,
	ErrDatabaseOperation: ExitQuery,
	ErrConnection:        ExitConfiguration,
	ErrConfiguration:     ExitConfiguration,
}

// CLIError representa um erro padronizado da linha de comando
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ExitCode retorna o código de saída do processo para o código de erro
func ExitCode(code string) int {
	status, exists := exitCodeMap[code]
	if !exists {
		return ExitFailure
	}
	return status
}

// WriteError escreve o erro em vermelho e devolve o código de saída correspondente
func WriteError(w io.Writer, code string, message string, details any) int {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(w, "Error [%s]: %s\n", code, message)
	if details != nil {
		fmt.Fprintf(w, "  %v\n", details)
	}
	return ExitCode(code)
}

// WriteJSONError escreve o erro como JSON, para --output json
func WriteJSONError(w io.Writer, code string, message string, details any) int {
	cliErr := CLIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]CLIError{"error": cliErr})

	return ExitCode(code)
}
