package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/allape/gogger"
	"github.com/allape/openspin/envar"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var l = gogger.New("config")

const DefaultConfigPath = "spin.toml"

type LoaderType string

const (
	LoaderAuto LoaderType = "auto"
	LoaderFile LoaderType = "file"
	LoaderHTTP LoaderType = "http"
)

type CodecType string

const (
	CodecJPEG CodecType = "jpeg"
	CodecPNG  CodecType = "png"
)

type DialDriverType string

const (
	DialNone       DialDriverType = "none"
	DialSerialPort DialDriverType = "serialport"
)

type Websocket struct {
	Addr string `toml:"addr" yaml:"addr"`
	Path string `toml:"path" yaml:"path"`
	Cors bool   `toml:"cors" yaml:"cors"`
}

type UI struct {
	// Path of an index.html served instead of the embedded one
	Path string `toml:"path" yaml:"path"`
}

type Codec struct {
	Type    CodecType `toml:"type" yaml:"type"`
	Quality int       `toml:"quality" yaml:"quality"`
}

type Viewer struct {
	ID        string     `toml:"id" yaml:"id"`
	Container string     `toml:"container" yaml:"container"`
	Loader    LoaderType `toml:"loader" yaml:"loader"`

	FolderPath      string `toml:"folder_path" yaml:"folder_path"`
	ViewWidth       int    `toml:"view_width" yaml:"view_width"`
	ViewHeight      int    `toml:"view_height" yaml:"view_height"`
	BackgroundColor string `toml:"background_color" yaml:"background_color"`
	UCount          int    `toml:"u_count" yaml:"u_count"`
	VCount          int    `toml:"v_count" yaml:"v_count"`
	ImageExtension  string `toml:"image_extension" yaml:"image_extension"`
	StartU          int    `toml:"start_u" yaml:"start_u"`
	StartV          int    `toml:"start_v" yaml:"start_v"`
	AllowFullscreen bool   `toml:"allow_fullscreen" yaml:"allow_fullscreen"`
	RenderOnLoad    bool   `toml:"render_on_load" yaml:"render_on_load"`
	Touch           *bool  `toml:"touch" yaml:"touch"`
	Placeholder     bool   `toml:"placeholder" yaml:"placeholder"`
}

// TouchEnabled defaults to true when touch is not set.
func (v Viewer) TouchEnabled() bool {
	return v.Touch == nil || *v.Touch
}

type Dial struct {
	Type   DialDriverType `toml:"type" yaml:"type"`
	Src    string         `toml:"src" yaml:"src"`
	Viewer string         `toml:"viewer" yaml:"viewer"`
	Ext    TagString      `toml:"ext" yaml:"ext"`
}

type Config struct {
	Websocket  Websocket `toml:"websocket" yaml:"websocket"`
	UI         UI        `toml:"ui" yaml:"ui"`
	Codec      Codec     `toml:"codec" yaml:"codec"`
	Containers []string  `toml:"containers" yaml:"containers"`
	Viewers    []Viewer  `toml:"viewer" yaml:"viewer"`
	Dial       Dial      `toml:"dial" yaml:"dial"`
}

func Default() Config {
	return Config{
		Websocket: Websocket{
			Addr: ":8080",
			Path: "/spin",
		},
		Codec: Codec{
			Type:    CodecJPEG,
			Quality: 80,
		},
		Dial: Dial{
			Type: DialNone,
		},
	}
}

// Path returns the config file to read: first argument, then env, then the default.
func Path(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return envar.Getenv(envar.OpenspinConfig, DefaultConfigPath)
}

func Load(configFile string) (Config, error) {
	l.Info().Println("reading config file:", configFile)

	config := Default()

	_, err := os.Stat(configFile)
	if err != nil {
		return config, err
	}

	configData, err := os.ReadFile(configFile)
	if err != nil {
		return config, err
	}

	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(configData, &config)
	default:
		err = toml.Unmarshal(configData, &config)
	}
	if err != nil {
		return config, fmt.Errorf("parse %s: %w", configFile, err)
	}

	config.normalize()

	err = config.Validate()
	if err != nil {
		return config, err
	}

	l.Verbose().Println("use config:", config)

	return config, nil
}

func (c *Config) normalize() {
	for i := range c.Viewers {
		v := &c.Viewers[i]
		if v.ID == "" {
			v.ID = v.Container
		}
		if v.Container == "" {
			v.Container = v.ID
		}
		if v.Loader == "" {
			v.Loader = LoaderAuto
		}
	}
	if c.Codec.Type == "" {
		c.Codec.Type = CodecJPEG
	}
	if c.Dial.Type == "" {
		c.Dial.Type = DialNone
	}
	if c.Dial.Viewer == "" && len(c.Viewers) > 0 {
		c.Dial.Viewer = c.Viewers[0].ID
	}
}

// Validate checks what the program can not run without.
// Viewer options themselves are not validated.
func (c *Config) Validate() error {
	var errs []error

	ids := make(map[string]bool)
	for index, v := range c.Viewers {
		if v.ID == "" {
			errs = append(errs, fmt.Errorf("viewer #%d: id or container is required", index))
			continue
		}
		if ids[v.ID] {
			errs = append(errs, fmt.Errorf("viewer %s: duplicated id", v.ID))
		}
		ids[v.ID] = true

		if v.BackgroundColor != "" {
			if _, err := ParseColor(v.BackgroundColor); err != nil {
				errs = append(errs, fmt.Errorf("viewer %s: %w", v.ID, err))
			}
		}
	}

	if c.Dial.Type != DialNone && !ids[c.Dial.Viewer] {
		errs = append(errs, fmt.Errorf("dial: unknown viewer %q", c.Dial.Viewer))
	}

	return errors.Join(errs...)
}

func (c *Config) Viewer(id string) (Viewer, bool) {
	for _, v := range c.Viewers {
		if v.ID == id {
			return v, true
		}
	}
	return Viewer{}, false
}
