package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlConfig = `
containers = ["bike", "helmet"]

[websocket]
addr = ":9090"
cors = true

[codec]
type = "png"

[[viewer]]
id = "bike"
folder_path = "./frames/bike/"
u_count = 36
v_count = 3
image_extension = "jpg"
background_color = "#000"
allow_fullscreen = true
render_on_load = true

[[viewer]]
container = "helmet"
folder_path = "https://cdn.example.com/helmet/"
touch = false
placeholder = true

[dial]
type = "serialport"
src = "/dev/ttyACM0"
ext = 'baud:"115200"'
`

const yamlConfig = `
containers: [bike]
viewer:
  - id: bike
    u_count: 24
    start_u: 3
codec:
  quality: 60
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTOML(t *testing.T) {
	conf, err := Load(writeConfig(t, "spin.toml", tomlConfig))
	require.NoError(t, err)

	assert.Equal(t, ":9090", conf.Websocket.Addr)
	assert.Equal(t, "/spin", conf.Websocket.Path)
	assert.True(t, conf.Websocket.Cors)
	assert.Equal(t, CodecPNG, conf.Codec.Type)
	assert.Equal(t, []string{"bike", "helmet"}, conf.Containers)

	require.Len(t, conf.Viewers, 2)
	bike := conf.Viewers[0]
	assert.Equal(t, "bike", bike.ID)
	assert.Equal(t, "bike", bike.Container)
	assert.Equal(t, LoaderAuto, bike.Loader)
	assert.Equal(t, 36, bike.UCount)
	assert.Equal(t, 3, bike.VCount)
	assert.Equal(t, "jpg", bike.ImageExtension)
	assert.True(t, bike.AllowFullscreen)
	assert.True(t, bike.RenderOnLoad)
	assert.True(t, bike.TouchEnabled())

	helmet, ok := conf.Viewer("helmet")
	require.True(t, ok)
	assert.Equal(t, "helmet", helmet.Container)
	assert.False(t, helmet.TouchEnabled())
	assert.True(t, helmet.Placeholder)

	assert.Equal(t, DialSerialPort, conf.Dial.Type)
	assert.Equal(t, "bike", conf.Dial.Viewer)
	baud, err := conf.Dial.Ext.GetBaud(9600)
	require.NoError(t, err)
	assert.Equal(t, 115200, baud)
}

func TestLoadYAML(t *testing.T) {
	conf, err := Load(writeConfig(t, "spin.yaml", yamlConfig))
	require.NoError(t, err)

	require.Len(t, conf.Viewers, 1)
	assert.Equal(t, 24, conf.Viewers[0].UCount)
	assert.Equal(t, 3, conf.Viewers[0].StartU)
	assert.Equal(t, CodecJPEG, conf.Codec.Type)
	assert.Equal(t, 60, conf.Codec.Quality)
	assert.Equal(t, ":8080", conf.Websocket.Addr)
	assert.Equal(t, DialNone, conf.Dial.Type)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "spin.toml", `[[viewer]]
id = "a"
background_color = "blue"

[[viewer]]
id = "a"

[dial]
type = "serialport"
viewer = "b"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color")
	assert.Contains(t, err.Error(), "duplicated id")
	assert.Contains(t, err.Error(), `unknown viewer "b"`)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "other.toml", Path([]string{"openspin", "other.toml"}))

	t.Setenv("OPENSPIN_CONFIG", "env.yaml")
	assert.Equal(t, "env.yaml", Path([]string{"openspin"}))

	t.Setenv("OPENSPIN_CONFIG", "")
	assert.Equal(t, DefaultConfigPath, Path(nil))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c)

	c, err = ParseColor("#0a0")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 0xaa, A: 255}, c)

	c, err = ParseColor("")
	require.NoError(t, err)
	assert.Equal(t, color.White, c)

	c, err = ParseColor("transparent")
	require.NoError(t, err)
	assert.Equal(t, color.Transparent, c)

	_, err = ParseColor("white")
	assert.Error(t, err)
}
