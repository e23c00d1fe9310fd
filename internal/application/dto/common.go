package dto

// PageRequest ?limit=&offset= de los listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// Or completa un limit ausente con def.
func (p PageRequest) Or(def int) PageRequest {
	if p.Limit == 0 {
		p.Limit = def
	}
	return p
}

// ErrorResponse cuerpo de todo error HTTP; Code es estable, Message es para humanos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
