package httpapi

import "github.com/azarubkin/classnotes/internal/server/services"

func toUpdateUserParams(req updateUserRequest) services.UpdateUserParams {
	return services.UpdateUserParams{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	}
}

func toUpdateNoteParams(req updateNoteRequest) services.UpdateNoteParams {
	return services.UpdateNoteParams{
		CfiRange: req.CfiRange,
		Text:     req.Text,
	}
}
