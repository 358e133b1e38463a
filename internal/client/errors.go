package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrNetworkUnreachable = errors.New("server unreachable")
	ErrNothingToExport    = errors.New("nothing to export")
	ErrSessionNotCleared  = errors.New("could not clear session")
)

// ValidationError is raised by form validation before any request is sent.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ServerError is any non-2xx response other than 401. A 404 matches ErrNotFound.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// User-facing texts shown through the Notifier.
const (
	msgSessionExpired  = "Sua sessão expirou. Por favor, faça login novamente."
	msgSessionStuck    = "Não foi possível encerrar a sessão. Verifique as permissões do arquivo de sessão."
	msgNetwork         = "Não foi possível conectar ao servidor. Verifique se ele está rodando."
	msgRequestFailed   = "Ocorreu um erro na requisição."
	msgRequiredFields  = "Por favor, preencha todos os campos obrigatórios."
	msgInvalidAmount   = "Informe um valor numérico maior que zero."
	msgAmountTooLarge  = "O valor informado é grande demais."
	msgInvalidDate     = "Informe uma data no formato AAAA-MM-DD."
	msgInvalidMonth    = "Informe o mês no formato AAAA-MM."
	msgInvalidCategory = "Categoria inválida para este tipo de transação."
	msgNothingToExport = "Nenhuma transação para exportar."
	msgExported        = "Dados exportados com sucesso!"
	msgGoodbye         = "Até logo!"
	msgNoGoals         = "Você ainda não tem nenhuma meta."
	msgGoalAdded       = "Meta adicionada com sucesso!"
	msgGoalDeleted     = "Meta excluída."
	msgConfirmGoal     = "Tem certeza que deseja excluir esta meta?"
	msgNoTransactions  = "Nenhuma transação encontrada."
	msgTxAdded         = "Transação adicionada com sucesso!"
	msgTxSaved         = "Transação salva com sucesso!"
	msgTxDeleted       = "Transação excluída."
	msgTxNotFound      = "Transação não encontrada."
	msgConfirmTx       = "Tem certeza que deseja excluir esta transação?"
)

// userMessage turns any error from this package into the text a user sees.
func userMessage(err error) string {
	var validationErr *ValidationError
	var serverErr *ServerError
	switch {
	case errors.Is(err, ErrSessionNotCleared):
		return msgSessionStuck
	case errors.Is(err, ErrUnauthorized):
		return msgSessionExpired
	case errors.Is(err, ErrNetworkUnreachable):
		return msgNetwork
	case errors.Is(err, ErrNothingToExport):
		return msgNothingToExport
	case errors.As(err, &validationErr):
		return validationErr.Msg
	case errors.As(err, &serverErr):
		if serverErr.Message == "" {
			return msgRequestFailed
		}
		return serverErr.Message
	default:
		return err.Error()
	}
}
