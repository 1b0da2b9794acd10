// Package gif renders games as animated GIFs, one frame per position.
package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/othellobot/othello/game"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi        = 72.0
	fontsize   = 12.0
	lineheight = 1.4
	textLines  = 4 // name, game number, score, winner

	endDelay = 300 // hundredths of a second the final position is shown for
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

// palette indices
const (
	background uint8 = iota
	felt
	black
	white
	grid
	marker
)

var globPalette = color.Palette{
	color.Gray{240},
	color.RGBA{0, 110, 50, 255},
	color.Gray{0},
	color.Gray{253},
	color.Gray{30},
	color.RGBA{220, 30, 30, 255},
}

// Encoder draws each position it is given and writes the animation on Flush. It implements othello.OutputEncoder.
type Encoder struct {
	H, W int
	font.Drawer
	io.Writer

	out  *gif.GIF
	cell int // side of a square, in pixels
	pad  int
	dy   int // line height, in pixels

	rows, cols  int
	initialized bool
}

// NewGifEncoder makes an encoder drawing squares of the given side, in pixels.
func NewGifEncoder(w io.Writer, cell int) *Encoder {
	if cell < 8 {
		cell = 8
	}
	return &Encoder{
		Writer: w,
		cell:   cell,
		pad:    10,
		Drawer: font.Drawer{Src: image.NewUniform(globPalette[black])},
		out:    &gif.GIF{LoopCount: -1},
	}
}

// Frames returns the number of frames encoded so far.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

// Encode draws the current position of the game as a new frame.
func (enc *Encoder) Encode(ms game.MetaState) error {
	g := ms.State()
	rows, cols := g.BoardSize()
	if !enc.initialized {
		enc.Face = truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		enc.dy = int(math.Ceil(fontsize * lineheight * dpi / 72))
		enc.rows, enc.cols = rows, cols
		enc.W = cols*enc.cell + 2*enc.pad
		enc.H = rows*enc.cell + 2*enc.pad + textLines*enc.dy
		enc.initialized = true
	}
	if rows != enc.rows || cols != enc.cols {
		return errors.Errorf("Board size changed from %dx%d to %dx%d", enc.rows, enc.cols, rows, cols)
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), globPalette)
	draw.Draw(im, im.Bounds(), image.NewUniform(globPalette[background]), image.Point{}, draw.Src)
	enc.drawBoard(im, g)

	enc.Dst = im
	y := enc.pad + rows*enc.cell + enc.dy
	line := func(format string, args ...interface{}) {
		enc.Dot = fixed.P(enc.pad, y)
		enc.DrawString(fmt.Sprintf(format, args...))
		y += enc.dy
	}
	line("%s", ms.Name())
	line("Epoch %d, Game Number: %d", ms.Epoch(), ms.GameNumber())
	line("Black %v White %v", ms.Score(game.Player(game.Black)), ms.Score(game.Player(game.White)))

	var delay int
	if ended, winner := g.Ended(); ended {
		delay = endDelay
		if winner == game.Player(game.None) {
			line("Draw")
		} else {
			line("Winner: %v", winner)
		}
	}
	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, delay)
	return nil
}

func (enc *Encoder) drawBoard(im *image.Paletted, g game.State) {
	board := g.Board()
	side := enc.cell
	r := image.Rect(enc.pad, enc.pad, enc.pad+enc.cols*side, enc.pad+enc.rows*side)
	draw.Draw(im, r, image.NewUniform(globPalette[felt]), image.Point{}, draw.Src)
	for i := 0; i <= enc.rows; i++ {
		y := enc.pad + i*side
		for x := r.Min.X; x <= r.Max.X; x++ {
			im.SetColorIndex(x, y, grid)
		}
	}
	for j := 0; j <= enc.cols; j++ {
		x := enc.pad + j*side
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			im.SetColorIndex(x, y, grid)
		}
	}

	for i, c := range board {
		var idx uint8
		switch c {
		case game.Black:
			idx = black
		case game.White:
			idx = white
		default:
			continue
		}
		cx, cy := enc.center(i)
		disc(im, cx, cy, side*2/5, idx)
	}

	if last := g.LastMove(); last.Single >= 0 && int(last.Single) < len(board) {
		cx, cy := enc.center(int(last.Single))
		disc(im, cx, cy, side/10+1, marker)
	}
}

// center returns the pixel at the centre of the square with the row-major index i.
func (enc *Encoder) center(i int) (x, y int) {
	row, col := i/enc.cols, i%enc.cols
	return enc.pad + col*enc.cell + enc.cell/2, enc.pad + row*enc.cell + enc.cell/2
}

func disc(im *image.Paletted, cx, cy, radius int, idx uint8) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				im.SetColorIndex(cx+dx, cy+dy, idx)
			}
		}
	}
}

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	if enc.Writer == nil {
		return errors.New("No writer to flush the gif to")
	}
	if len(enc.out.Image) == 0 {
		return errors.New("No frames to write")
	}
	return gif.EncodeAll(enc.Writer, enc.out)
}
