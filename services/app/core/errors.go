package core

import "errors"

// Auth errors
var (
	ErrEmailNotFound     = errors.New("Email não encontrado")
	ErrIncorrectPassword = errors.New("Senha incorreta")
	ErrEmailInUse        = errors.New("Email já está em uso")
	ErrAuthConnection    = errors.New("Erro de conexão com o servidor")
)

// Task errors
var (
	ErrFetchTasks      = errors.New("Erro ao buscar tarefas")
	ErrCreateTask      = errors.New("Erro ao criar tarefa")
	ErrUpdateTask      = errors.New("Erro ao atualizar tarefa")
	ErrDeleteTask      = errors.New("Erro ao deletar tarefa")
	ErrFetchStats      = errors.New("Erro ao buscar estatísticas")
	ErrFetchCategories = errors.New("Erro ao buscar categorias")
)

// ErrUnknown replaces failures that carry no usable message.
var ErrUnknown = errors.New("Erro desconhecido")

// TransportError hides a network or protocol failure behind a fixed
// per-operation message. The cause stays reachable through errors.Is/As.
type TransportError struct {
	Op  error
	Err error
}

func NewTransportError(op, cause error) *TransportError {
	return &TransportError{Op: op, Err: cause}
}

func (e *TransportError) Error() string { return e.Op.Error() }

func (e *TransportError) Unwrap() []error { return []error{e.Op, e.Err} }

// failureMessage is what a store shows for a failed action.
func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return ErrUnknown.Error()
}
