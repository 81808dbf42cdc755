package tokengenerator

import (
	"crypto/rand"
	"encoding/base64"
	"useradmin/internal/core/domain/user"
)

const DefaultByteLength = 32

// Generator produces cryptographically random, URL-safe opaque tokens
// for the credential-action flows.
type Generator struct {
	byteLength int
}

func NewGenerator() *Generator {
	return &Generator{byteLength: DefaultByteLength}
}

func NewGeneratorWithLength(byteLength int) *Generator {
	if byteLength <= 0 {
		byteLength = DefaultByteLength
	}
	return &Generator{byteLength: byteLength}
}

func (g *Generator) GenerateSetPasswordToken() user.SetPasswordToken {
	return user.SetPasswordToken(g.generate())
}

func (g *Generator) GenerateResetPasswordToken() user.ResetPasswordToken {
	return user.ResetPasswordToken(g.generate())
}

func (g *Generator) generate() string {
	b := make([]byte, g.byteLength)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
