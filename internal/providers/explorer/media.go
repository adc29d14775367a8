package explorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
)

// mediaFS builds an in-memory disk holding the given files
func mediaFS(files map[string]string) (billy.Filesystem, error) {
	fs := memfs.New()
	for name, content := range files {
		name = strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/")
		if name == "" {
			continue
		}
		if err := util.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}
	return fs, nil
}

func (p *Provider) insertFloppy(params map[string]interface{}) (*types.Result, error) {
	fs, err := mediaFS(getFiles(params, "files"))
	if err != nil {
		return failure(err.Error())
	}
	if err := p.ws.Drives().InsertFloppy(getString(params, "label"), fs); err != nil {
		return failuref("insert floppy failed: %v", err)
	}
	return success(map[string]interface{}{"drive": "A:", "label": p.ws.Drives().FloppyLabel()})
}

func (p *Provider) ejectFloppy(ctx context.Context) (*types.Result, error) {
	if err := p.ws.Drives().EjectFloppy(ctx); err != nil {
		return failuref("eject floppy failed: %v", err)
	}
	return success(map[string]interface{}{"ejected": true})
}

func (p *Provider) insertCD(params map[string]interface{}) (*types.Result, error) {
	image := getString(params, "image")
	if image == "" {
		return failure("image parameter required")
	}
	fs, err := mediaFS(getFiles(params, "files"))
	if err != nil {
		return failure(err.Error())
	}
	if err := p.ws.Drives().InsertCD(image, fs); err != nil {
		return failuref("insert cd failed: %v", err)
	}
	return success(map[string]interface{}{"drive": "E:", "label": p.ws.Drives().CDLabel()})
}

func (p *Provider) ejectCD(ctx context.Context) (*types.Result, error) {
	if err := p.ws.Drives().EjectCD(ctx); err != nil {
		return failuref("eject cd failed: %v", err)
	}
	return success(map[string]interface{}{"ejected": true})
}

func (p *Provider) insertRemovable(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	fs, err := mediaFS(getFiles(params, "files"))
	if err != nil {
		return failure(err.Error())
	}
	letter, err := p.ws.Drives().InsertRemovable(ctx, getString(params, "label"), fs)
	if err != nil {
		return failuref("insert removable disk failed: %v", err)
	}
	label, _ := p.ws.Drives().RemovableLabel(letter)
	return success(map[string]interface{}{"drive": string(letter) + ":", "label": label})
}

func (p *Provider) ejectRemovable(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	letter := strings.TrimSuffix(strings.ToUpper(getString(params, "letter")), ":")
	if len(letter) != 1 {
		return failure("letter parameter required")
	}
	if err := p.ws.Drives().EjectRemovable(ctx, letter[0]); err != nil {
		return failuref("eject removable disk failed: %v", err)
	}
	return success(map[string]interface{}{"ejected": true, "drive": letter + ":"})
}
