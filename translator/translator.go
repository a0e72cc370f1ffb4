package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	initOnce   sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on
// first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	initOnce.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Translate converts WebGL GLSL ES source for the given stage ("vertex" or
// "fragment") into GLSL 4.10 for a desktop core profile.
func Translate(stage, src string) (string, error) {
	t, err := GetTranslator()
	if err != nil {
		return "", fmt.Errorf("shader translator unavailable: %w", err)
	}
	out, err := t.TranslateShader(src, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return "", err
	}
	return out.Code, nil
}
