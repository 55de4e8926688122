package web

import (
	"fmt"
	"net/http"

	"github.com/utakatalp/nba-tracker/internal/league"
)

const (
	msgUsernameTaken  = "That username is already taken."
	msgBadCredentials = "Invalid username or password."
)

type loginPage struct {
	Form league.CredentialsForm
	Next string
}

func credentialsForm(r *http.Request) league.CredentialsForm {
	return league.CredentialsForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	v := view{Title: "Register", Data: league.CredentialsForm{}}
	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "register", v)
		return
	}

	form := credentialsForm(r)
	v.Data = league.CredentialsForm{Username: form.Username}
	if err := form.Validate(); err != nil {
		s.invalid(w, r, "register", v, err)
		return
	}
	ok, err := s.auth.Register(r.Context(), form.Username, form.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !ok {
		v.Error = msgUsernameTaken
		s.render(w, r, http.StatusConflict, "register", v)
		return
	}
	setFlash(w, flashSuccess, "Registration successful! Please log in.")
	redirect(w, r, "/login")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	page := &loginPage{Next: safeNext(r.URL.Query().Get("next"))}
	v := view{Title: "Log in", Data: page}
	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "login", v)
		return
	}

	form := credentialsForm(r)
	page.Form.Username = form.Username
	if err := form.Validate(); err != nil {
		s.invalid(w, r, "login", v, err)
		return
	}
	user, ok, err := s.auth.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !ok {
		v.Error = msgBadCredentials
		s.render(w, r, http.StatusUnauthorized, "login", v)
		return
	}

	token, sess, err := s.sessions.Issue(user)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setSessionCookie(w, token, sess.ExpiresAt)
	setFlash(w, flashSuccess, fmt.Sprintf("Welcome, %s!", user.Username))
	redirect(w, r, page.Next)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	setFlash(w, flashInfo, "You have been logged out.")
	redirect(w, r, "/")
}
