package web

import (
	"bytes"
	"errors"
	"image"
	"os"

	"github.com/Zachkp/folio/internal/seo"
)

// renderSocialCard draws the share image, with the profile picture when it
// can be read from the images directory.
func (s *Server) renderSocialCard() ([]byte, error) {
	var profile image.Image
	raw, err := s.profileImage()
	switch {
	case err == nil:
		profile, err = seo.DecodeProfile(bytes.NewReader(raw))
		if err != nil {
			s.logger.Warn("profile image unusable, drawing plain card", "err", err)
			profile = nil
		}
	case !errors.Is(err, os.ErrNotExist):
		s.logger.Warn("reading profile image", "err", err)
	}
	return seo.SocialCard(profile)
}
