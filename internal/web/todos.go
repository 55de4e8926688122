package web

import (
	"net/http"
	"strings"

	"github.com/utakatalp/nba-tracker/internal/league"
)

// todos lists the to-do entries and appends one on POST. Blank submissions
// are ignored without a message.
func (s *Server) todos(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		form := league.TodoForm{Text: r.PostFormValue("text")}
		if form.Validate() == nil {
			if _, err := s.store.AddTodo(r.Context(), strings.TrimSpace(form.Text)); err != nil {
				s.fail(w, r, err)
				return
			}
		}
		redirect(w, r, "/todos")
		return
	}

	todos, err := s.store.ListTodos(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "todos", view{Title: "To-do list", Data: todos})
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.store.DeleteTodo(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	redirect(w, r, "/todos")
}
