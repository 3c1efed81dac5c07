package glbackend

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	xdraw "golang.org/x/image/draw"

	"github.com/Lioooooo123/blackhole"
)

type glTexture2D uint32

func (t glTexture2D) TextureID() uint32 { return uint32(t) }

type glCubemap uint32

func (c glCubemap) CubemapID() uint32 { return uint32(c) }

// cubemapFaces lists the face files in +X -X +Y -Y +Z -Z order.
var cubemapFaces = [6]string{
	"right.png", "left.png", "top.png", "bottom.png", "front.png", "back.png",
}

// LoadTexture2D decodes a PNG or JPEG into a linearly filtered 2D texture.
func (b *Backend) LoadTexture2D(path string) (blackhole.Texture, error) {
	rgba, err := decodeRGBA(path)
	if err != nil {
		return nil, err
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	uploadRGBA(gl.TEXTURE_2D, rgba)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return glTexture2D(tex), nil
}

// LoadCubemap decodes the six face images of dir in parallel and uploads them
// as one cube texture. Faces are rescaled to the first face's size when they
// disagree, since cube faces must match exactly.
func (b *Backend) LoadCubemap(dir string) (blackhole.Cubemap, error) {
	var (
		wg    sync.WaitGroup
		faces [6]*image.RGBA
		errs  [6]error
	)
	for i, name := range cubemapFaces {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			faces[i], errs[i] = decodeRGBA(path)
		}(i, filepath.Join(dir, name))
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("cubemap face %s: %w", cubemapFaces[i], err)
		}
	}
	size := faces[0].Bounds().Size()
	for i, face := range faces {
		if face.Bounds().Size() != size {
			faces[i] = rescaleRGBA(face, size.X, size.Y)
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)
	for i, face := range faces {
		uploadRGBA(uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+i), face)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	return glCubemap(tex), nil
}

func decodeRGBA(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}
	size := img.Bounds().Size()
	rgba := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	xdraw.Copy(rgba, image.Point{}, img, img.Bounds(), xdraw.Src, nil)
	return rgba, nil
}

func rescaleRGBA(src *image.RGBA, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func uploadRGBA(targetFace uint32, img *image.RGBA) {
	size := img.Bounds().Size()
	gl.TexImage2D(targetFace, 0, gl.RGBA8, int32(size.X), int32(size.Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}
