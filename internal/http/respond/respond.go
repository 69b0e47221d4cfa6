package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// JSON writes the payload verbatim with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}

// Error writes a {"message": ...} body. Internal detail stays in the server
// logs; callers only ever see the message passed here.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}
