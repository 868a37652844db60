package services

import "github.com/azarubkin/classnotes/internal/server/models"

// The view types are the plain data projections handed to the transport
// layer. They never carry usernames or credential material.

type UserView struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Permission models.Permission `json:"permission"`
}

type ClassMemberView struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Permission      models.Permission `json:"permission"`
	ClassPermission models.Permission `json:"classPermission"`
}

type ClassView struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Members []ClassMemberView `json:"members"`
}

type BookView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type NoteView struct {
	ID       string `json:"id"`
	CfiRange string `json:"cfiRange"`
	Text     string `json:"text"`
}

type AnnotationSetView struct {
	ID    string     `json:"id"`
	Notes []NoteView `json:"notes"`
}

func userView(u *models.User) *UserView {
	return &UserView{ID: u.ID, Name: u.Name, Permission: u.Permission}
}

func noteView(n *models.Note) NoteView {
	return NoteView{ID: n.ID, CfiRange: n.CfiRange, Text: n.Text}
}
