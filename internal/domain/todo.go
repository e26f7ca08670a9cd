package domain

// ============================================================
// TodoList (lists with nested tasks)
// ============================================================

// Tarefa is one task inside a list.
type Tarefa struct {
	ID          int    `json:"id,omitempty"`
	ListaID     int    `json:"listaId,omitempty"`
	Descricao   string `json:"descricao"`
	Concluido   bool   `json:"concluido"`
	DataCriacao string `json:"dataCriacao,omitempty"`
}

// TodoLista is an ordered list of tasks.
type TodoLista struct {
	ID      int      `json:"id,omitempty"`
	Titulo  string   `json:"titulo"`
	Tarefas []Tarefa `json:"tarefas,omitempty"`
}
