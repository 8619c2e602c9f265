package members

type CreateMemberPayload struct {
	FullName string  `json:"fullName" mod:"trim" validate:"required,max=150"`
	Email    *string `json:"email,omitempty" mod:"trim" validate:"omitempty,email,max=100"`
}

type UpdateMemberPayload struct {
	FullName *string `json:"fullName,omitempty" mod:"trim" validate:"omitempty,min=1,max=150"`
	Email    *string `json:"email,omitempty" mod:"trim" validate:"omitempty,email,max=100"`
}
