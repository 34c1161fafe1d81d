// Package sessioncodec serializa sesiones para los repositorios que guardan la sesión como documento.
package sessioncodec

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
)

// Encode serializa la sesión completa.
func Encode(s *entity.Session) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("codificar sesión %s: %w", s.ID, err)
	}
	return b, nil
}

// Decode reconstruye una sesión; el resultado no comparte memoria con nadie.
func Decode(b []byte) (*entity.Session, error) {
	var s entity.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decodificar sesión: %w", err)
	}
	return &s, nil
}
