// Command game is a drag and drop board for playing the bots with the mouse.
// B switches bots between moves and N starts a new game.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"chessminimax/arena"
	"chessminimax/bots"
	"chessminimax/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

const (
	squareSize   = 80
	statusHeight = 40
	boardOffsetY = statusHeight
	screenWidth  = squareSize * 8
	screenHeight = squareSize*8 + statusHeight*2

	btnWidth  = 200
	btnHeight = 60
)

var (
	lightSquare = color.RGBA{240, 217, 181, 255}
	darkSquare  = color.RGBA{181, 136, 99, 255}
	lastMove    = color.RGBA{205, 210, 106, 255}
)

type botReply struct {
	move    *chess.Move
	bot     string
	elapsed time.Duration
}

type Game struct {
	chessGame    *chess.Game
	selected     chess.Square
	dragging     chess.Piece
	dragX, dragY int
	playerColor  chess.Color
	gameStarted  bool
	botThinking  bool
	thinkStart   time.Time
	last         *chess.Move
	bots         []bots.ChessBot
	currentBot   int
	replies      chan botReply
	log          zerolog.Logger
}

func NewGame(botList []bots.ChessBot, log zerolog.Logger) *Game {
	return &Game{
		selected: chess.NoSquare,
		dragging: chess.NoPiece,
		bots:     botList,
		replies:  make(chan botReply, 1),
		log:      log,
	}
}

func (g *Game) Update() error {
	if !g.gameStarted {
		g.updateColorPicker()
		return nil
	}

	select {
	case r := <-g.replies:
		g.applyBotMove(r)
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !g.botThinking {
		g.gameStarted = false
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) && !g.botThinking {
		g.currentBot = (g.currentBot + 1) % len(g.bots)
		g.log.Info().Str("bot", g.bots[g.currentBot].Name()).Msg("bot switched")
	}

	if g.chessGame.Outcome() != chess.NoOutcome {
		return nil
	}
	if g.chessGame.Position().Turn() != g.playerColor {
		if !g.botThinking {
			g.startBot()
		}
		return nil
	}

	// player's turn
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if sq, ok := g.squareAt(ebiten.CursorPosition()); ok {
			piece := g.chessGame.Position().Board().Piece(sq)
			if piece != chess.NoPiece && piece.Color() == g.playerColor {
				g.selected, g.dragging = sq, piece
			}
		}
	}
	if g.dragging != chess.NoPiece {
		g.dragX, g.dragY = ebiten.CursorPosition()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging != chess.NoPiece {
		if target, ok := g.squareAt(ebiten.CursorPosition()); ok {
			if move := findMove(g.chessGame, g.selected, target, chess.Queen); move != nil {
				g.play(move)
			}
		}
		g.selected, g.dragging = chess.NoSquare, chess.NoPiece
	}
	return nil
}

func (g *Game) updateColorPicker() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.currentBot = (g.currentBot + 1) % len(g.bots)
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	btnY := screenHeight/2 + 20
	if y < btnY || y > btnY+btnHeight {
		return
	}
	switch {
	case x > screenWidth/2-btnWidth-20 && x < screenWidth/2-20:
		g.startGame(chess.White)
	case x > screenWidth/2+20 && x < screenWidth/2+20+btnWidth:
		g.startGame(chess.Black)
	}
}

func (g *Game) startGame(player chess.Color) {
	g.chessGame = chess.NewGame()
	g.playerColor = player
	g.gameStarted = true
	g.last = nil
	g.log.Info().Str("player", player.String()).Str("bot", g.bots[g.currentBot].Name()).Msg("game started")
}

// startBot searches on a copy of the game so drawing never races the bot.
func (g *Game) startBot() {
	bot := g.bots[g.currentBot]
	game := g.chessGame.Clone()
	g.botThinking = true
	g.thinkStart = time.Now()
	go func(start time.Time) {
		m := bot.BestMove(game)
		g.replies <- botReply{move: m, bot: bot.Name(), elapsed: time.Since(start)}
	}(g.thinkStart)
}

func (g *Game) applyBotMove(r botReply) {
	g.botThinking = false
	if r.move == nil {
		g.log.Warn().Str("bot", r.bot).Msg("bot returned no move")
		return
	}
	move := findMove(g.chessGame, r.move.S1(), r.move.S2(), r.move.Promo())
	if move == nil {
		g.log.Error().Str("bot", r.bot).Str("move", r.move.String()).Msg("bot move is not legal")
		return
	}
	g.log.Info().Str("bot", r.bot).Str("move", move.String()).Dur("elapsed", r.elapsed).Msg("bot moved")
	g.play(move)
}

func (g *Game) play(move *chess.Move) {
	if err := g.chessGame.Move(move); err != nil {
		g.log.Error().Err(err).Msg("move rejected")
		return
	}
	g.last = move
	if g.chessGame.Outcome() != chess.NoOutcome {
		g.log.Info().
			Str("result", g.chessGame.Outcome().String()).
			Str("method", g.chessGame.Method().String()).
			Msg("game over")
	}
}

// findMove prefers promo when several moves share from and to.
func findMove(game *chess.Game, from, to chess.Square, promo chess.PieceType) *chess.Move {
	var found *chess.Move
	for _, m := range game.ValidMoves() {
		if m.S1() != from || m.S2() != to {
			continue
		}
		if m.Promo() == promo || m.Promo() == chess.NoPieceType {
			return m
		}
		found = m
	}
	return found
}

// squareAt maps screen coordinates to a square, seen from the player's side.
func (g *Game) squareAt(x, y int) (chess.Square, bool) {
	y -= boardOffsetY
	if x < 0 || x >= squareSize*8 || y < 0 || y >= squareSize*8 {
		return chess.NoSquare, false
	}
	col, row := x/squareSize, y/squareSize
	return g.squareForCell(col, row), true
}

func (g *Game) squareForCell(col, row int) chess.Square {
	if g.playerColor == chess.Black {
		return chess.NewSquare(chess.File(7-col), chess.Rank(row))
	}
	return chess.NewSquare(chess.File(col), chess.Rank(7-row))
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.gameStarted {
		g.drawColorPicker(screen)
		return
	}

	board := g.chessGame.Position().Board()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			x, y := float32(col*squareSize), float32(row*squareSize+boardOffsetY)
			clr := lightSquare
			if (col+row)%2 == 1 {
				clr = darkSquare
			}
			sq := g.squareForCell(col, row)
			if g.last != nil && (sq == g.last.S1() || sq == g.last.S2()) {
				clr = lastMove
			}
			vector.DrawFilledRect(screen, x, y, squareSize, squareSize, clr, false)

			piece := board.Piece(sq)
			if piece != chess.NoPiece && !(g.dragging != chess.NoPiece && sq == g.selected) {
				drawPiece(screen, piece, x+squareSize/2, y+squareSize/2)
			}
		}
	}
	if g.dragging != chess.NoPiece {
		drawPiece(screen, g.dragging, float32(g.dragX), float32(g.dragY))
	}

	status := "Your move"
	switch {
	case g.chessGame.Outcome() != chess.NoOutcome:
		status = fmt.Sprintf("Result: %s (%s), N for a new game", g.chessGame.Outcome(), g.chessGame.Method())
	case g.botThinking:
		status = fmt.Sprintf("Bot is thinking... %.1fs", time.Since(g.thinkStart).Seconds())
	}
	ebitenutil.DebugPrintAt(screen, status, 10, 12)
	ebitenutil.DebugPrintAt(screen, "Bot: "+g.bots[g.currentBot].Name()+"  (B to switch)", 10, screenHeight-statusHeight+12)
}

func drawPiece(screen *ebiten.Image, piece chess.Piece, cx, cy float32) {
	outer, inner := color.RGBA{245, 245, 235, 255}, color.RGBA{120, 120, 120, 255}
	if piece.Color() == chess.Black {
		outer, inner = color.RGBA{20, 20, 20, 255}, color.RGBA{60, 60, 60, 255}
	}
	vector.DrawFilledCircle(screen, cx, cy, squareSize*0.38, outer, true)
	vector.DrawFilledCircle(screen, cx, cy, squareSize*0.30, inner, true)
	letter := strings.ToUpper(piece.Type().String())
	ebitenutil.DebugPrintAt(screen, letter, int(cx)-3, int(cy)-8)
}

func (g *Game) drawColorPicker(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Chess on Go", screenWidth/2-35, screenHeight/2-80)
	ebitenutil.DebugPrintAt(screen, "Choose your colour:", screenWidth/2-55, screenHeight/2-40)

	btnY := float32(screenHeight/2 + 20)
	whiteX := float32(screenWidth/2 - btnWidth - 20)
	blackX := float32(screenWidth/2 + 20)
	vector.DrawFilledRect(screen, whiteX, btnY, btnWidth, btnHeight, color.RGBA{200, 200, 200, 255}, false)
	vector.DrawFilledRect(screen, blackX, btnY, btnWidth, btnHeight, color.RGBA{50, 50, 50, 255}, false)
	ebitenutil.DebugPrintAt(screen, "Play white", int(whiteX)+65, int(btnY)+22)
	ebitenutil.DebugPrintAt(screen, "Play black", int(blackX)+65, int(btnY)+22)
	ebitenutil.DebugPrintAt(screen, "Bot: "+g.bots[g.currentBot].Name()+"  (B to switch)", 10, screenHeight-statusHeight+12)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	var (
		botDescs = flag.String("bots", "minimax:3,minimax:2,newborn,random", "comma separated bots to cycle through")
		weights  = flag.String("weights", "", "JSON file overriding evaluation weights")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	log, err := logging.New(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	w := bots.DefaultWeights()
	if *weights != "" {
		if w, err = bots.LoadWeights(*weights); err != nil {
			log.Fatal().Err(err).Msg("load weights")
		}
	}
	var botList []bots.ChessBot
	for i, desc := range strings.Split(*botDescs, ",") {
		factory, err := arena.ParseBot(desc, w, log)
		if err != nil {
			log.Fatal().Err(err).Msg("parse bots")
		}
		bot, err := factory(time.Now().UnixNano() + int64(i))
		if err != nil {
			log.Fatal().Err(err).Msg("create bot")
		}
		botList = append(botList, bot)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Chess on Go")
	if err := ebiten.RunGame(NewGame(botList, log)); err != nil {
		log.Fatal().Err(err).Msg("run game")
	}
}
