package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest carries only the validated subset of the user create
// payload. The remaining profile fields are merged straight into the model;
// the plaintext password is extracted here and hashed before storage.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	RUT      string `json:"rut" validate:"required"`
}

// UpdateUserRequest only surfaces the optional password change; everything
// else follows merge semantics against the stored record.
type UpdateUserRequest struct {
	Password string `json:"password" validate:"omitempty,min=8"`
}

type CreateStudentRequest struct {
	RUT string `json:"rut" validate:"required"`
}

type CreateInterventionRequest struct {
	Title     string `json:"title" validate:"required"`
	StudentID uint   `json:"studentId" validate:"required"`
}

type CreateCommentRequest struct {
	Content        string `json:"content" validate:"required"`
	InterventionID uint   `json:"interventionId" validate:"required"`
}
