package reporting

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/vfg2006/billing-report/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-report/infrastructure/repository"
	"github.com/vfg2006/billing-report/internal/config"
	"github.com/vfg2006/billing-report/pkg/cliErrors"
)

// Erros específicos para o contexto de relatórios
var (
	// Erros de validação
	ErrInvalidInput = errors.New("invalid input")

	// Erros de banco de dados
	ErrQuery    = errors.New("query failed")
	ErrNotFound = errors.New("not found")

	// Erros de configuração
	ErrConfiguration = errors.New("configuration error")

	ErrInternal = errors.New("internal error")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err     error  // Erro base (um dos sentinelas acima)
	Code    string // Código de erro da CLI
	Details string // Detalhes adicionais
	Cause   error  // Erro original, quando existir
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap expõe o sentinela e a causa para errors.Is / errors.As
func (e *ReportError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewReportError cria um novo ReportError
func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewReportErrorWithCause cria um ReportError preservando o erro original
func NewReportErrorWithCause(err error, code string, cause error) *ReportError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
		Cause:   cause,
	}
}

// Classify converte erros das camadas de baixo na taxonomia de relatórios.
// Erros já classificados são devolvidos sem alteração.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return err
	}

	var queryErr *repository.QueryError

	switch {
	case errors.Is(err, config.ErrInvalidConfig):
		return NewReportErrorWithCause(ErrConfiguration, cliErrors.ErrConfiguration, err)
	case errors.Is(err, sqldb.ErrConnection):
		return NewReportErrorWithCause(ErrConfiguration, cliErrors.ErrConnection, err)
	case errors.Is(err, repository.ErrClientNotFound):
		return NewReportErrorWithCause(ErrNotFound, cliErrors.ErrNotFound, err)
	case errors.As(err, &queryErr):
		return NewReportErrorWithCause(ErrQuery, cliErrors.ErrDatabaseOperation, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return NewReportErrorWithCause(ErrQuery, cliErrors.ErrDatabaseOperation, err)
	}

	return NewReportErrorWithCause(ErrInternal, cliErrors.ErrInternal, err)
}

// CodeOf retorna o código de CLI de um erro classificado
func CodeOf(err error) string {
	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr.Code
	}
	return cliErrors.ErrInternal
}

// QueryDetails devolve o SQL e os parâmetros da query que falhou, se houver
func QueryDetails(err error) (string, []interface{}, bool) {
	var queryErr *repository.QueryError
	if errors.As(err, &queryErr) {
		return queryErr.Query, queryErr.Args, true
	}
	return "", nil, false
}
