package services

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/types"
	"github.com/ecotrace/ecotrace-backend/internal/utils"
)

const avatarSize = 256

// AvatarService renders a deterministic initials avatar for a user and
// stores it under the local media directory.
type AvatarService interface {
	CreateUserAvatar(ctx context.Context, user *types.User) error
	AvatarPath(user *types.User) string
}

type avatarService struct {
	log      *logger.Logger
	mediaDir string
	fontFace font.Face

	palette []color.NRGBA
}

func NewAvatarService(log *logger.Logger) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	mediaDir := utils.GetEnv("MEDIA_DIR", "./data/media", log)
	if err := os.MkdirAll(filepath.Join(mediaDir, "avatars"), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	var face font.Face
	fontPath := utils.GetEnv("AVATAR_FONT", "", log)
	if fontPath != "" {
		loaded, err := loadFontFace(fontPath, avatarSize*0.42)
		if err != nil {
			return nil, fmt.Errorf("load avatar font: %w", err)
		}
		face = loaded
	} else {
		serviceLog.Info("AVATAR_FONT not set, avatars will be plain discs")
	}

	return &avatarService{
		log:      serviceLog,
		mediaDir: mediaDir,
		fontFace: face,
		palette: []color.NRGBA{
			{R: 0x2d, G: 0x6a, B: 0x4f, A: 0xff},
			{R: 0x40, G: 0x91, B: 0x6c, A: 0xff},
			{R: 0x1b, G: 0x43, B: 0x32, A: 0xff},
			{R: 0x52, G: 0xb7, B: 0x88, A: 0xff},
			{R: 0x08, G: 0x51, B: 0x4f, A: 0xff},
			{R: 0x38, G: 0x70, B: 0x99, A: 0xff},
		},
	}, nil
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: points}), nil
}

func (as *avatarService) CreateUserAvatar(ctx context.Context, user *types.User) error {
	initials := userInitials(user)
	bg := as.palette[colorIndex(user.ID.String(), len(as.palette))]

	dc := gg.NewContext(avatarSize, avatarSize)
	dc.SetColor(bg)
	dc.DrawCircle(avatarSize/2, avatarSize/2, avatarSize/2)
	dc.Fill()

	if as.fontFace != nil && initials != "" {
		dc.SetFontFace(as.fontFace)
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(initials, avatarSize/2, avatarSize/2, 0.5, 0.5)
	}

	key := filepath.Join("avatars", user.ID.String()+".png")
	if err := dc.SavePNG(filepath.Join(as.mediaDir, key)); err != nil {
		return fmt.Errorf("save avatar png: %w", err)
	}
	user.AvatarKey = key
	return nil
}

func (as *avatarService) AvatarPath(user *types.User) string {
	if user == nil || user.AvatarKey == "" {
		return ""
	}
	return filepath.Join(as.mediaDir, user.AvatarKey)
}

func userInitials(user *types.User) string {
	var b strings.Builder
	if user.FirstName != "" {
		b.WriteString(strings.ToUpper(user.FirstName[:1]))
	}
	if user.LastName != "" {
		b.WriteString(strings.ToUpper(user.LastName[:1]))
	}
	return b.String()
}

// colorIndex hashes an id into the palette deterministically, so a user
// keeps the same background across regenerations.
func colorIndex(id string, buckets int) int {
	h := 0
	for _, c := range id {
		h = (h*31 + int(c)) % buckets
	}
	if h < 0 {
		h += buckets
	}
	return h
}
