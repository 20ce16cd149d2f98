package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"session not loaded"`
}

// MessageResponseDTO는 단순 메시지 응답 형식을 통일하기 위한 DTO이다.
type MessageResponseDTO struct {
	Message string `json:"message" example:"dismissed"`
}

// ViewportSignalRequestDTO 는 브라우저의 IntersectionObserver 가 보내는 가시성 변화다.
type ViewportSignalRequestDTO struct {
	Target  string `json:"target" binding:"required" example:"session-42"`
	Visible bool   `json:"visible"`
}
