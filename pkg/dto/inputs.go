package dto

import (
	"strings"
	"time"
)

// Inputs are validated with plain field checks collected into a field ->
// message map, rendered as the 400 body when non-empty.

type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (in *CreateUserInput) Validate() map[string]string {
	fields := map[string]string{}
	requireNonBlank(fields, "name", in.Name)
	requireEmail(fields, in.Email)
	return fields
}

type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (in *UpdateUserInput) Validate() map[string]string {
	fields := map[string]string{}
	if in.Email != nil {
		requireEmail(fields, *in.Email)
	}
	return fields
}

type CreateItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *uint  `json:"requestId"`
}

func (in *CreateItemInput) Validate() map[string]string {
	fields := map[string]string{}
	requireNonBlank(fields, "name", in.Name)
	requireNonBlank(fields, "description", in.Description)
	if in.Available == nil {
		fields["available"] = "available are required"
	}
	return fields
}

type UpdateItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateBookingInput struct {
	ItemID uint       `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

func (in *CreateBookingInput) Validate(now time.Time) map[string]string {
	fields := map[string]string{}
	if in.ItemID == 0 {
		fields["itemId"] = "itemId are required"
	}
	if in.Start == nil {
		fields["start"] = "start are required"
	} else if in.Start.Before(now) {
		fields["start"] = "start must not be in the past"
	}
	if in.End == nil {
		fields["end"] = "end are required"
	} else if in.End.Before(now) {
		fields["end"] = "end must not be in the past"
	}
	if in.Start != nil && in.End != nil && !in.Start.Before(*in.End) {
		fields["end"] = "end must be after start"
	}
	return fields
}

type CreateCommentInput struct {
	Text string `json:"text"`
}

func (in *CreateCommentInput) Validate() map[string]string {
	fields := map[string]string{}
	requireNonBlank(fields, "text", in.Text)
	return fields
}

type CreateRequestInput struct {
	Description string `json:"description"`
}

func (in *CreateRequestInput) Validate() map[string]string {
	fields := map[string]string{}
	requireNonBlank(fields, "description", in.Description)
	return fields
}

func requireNonBlank(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = name + " are required"
	}
}

func requireEmail(fields map[string]string, value string) {
	if strings.TrimSpace(value) == "" {
		fields["email"] = "email are required"
		return
	}
	at := strings.Index(value, "@")
	if at < 1 || at == len(value)-1 || strings.ContainsAny(value, " \t") {
		fields["email"] = "email must be well-formed"
	}
}
