package common

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/errorx"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/storage"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/nfnt/resize"
)

// ProcessProofImage validates, downscales, and uploads a proof photo. Wide
// originals are shrunk to the configured max width before upload so the
// feed never serves multi-megabyte camera files.
func ProcessProofImage(ctx context.Context, store storage.Storage, name string, data []byte) (string, error) {
	cfg := xcontext.Configs(ctx).File
	if len(data) > int(cfg.MaxSize) {
		return "", errorx.New(errorx.BadRequest, "Image too large, max size is %d", cfg.MaxSize)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode proof image: %v", err)
		return "", errorx.New(errorx.BadRequest, "Invalid image")
	}

	if img.Bounds().Dx() > int(cfg.MaxProofWidth) {
		img = resize.Thumbnail(uint(cfg.MaxProofWidth), uint(cfg.MaxProofWidth), img, resize.Lanczos3)

		var buf bytes.Buffer
		switch format {
		case "png":
			err = png.Encode(&buf, img)
		default:
			format = "jpeg"
			err = jpeg.Encode(&buf, img, nil)
		}

		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot re-encode proof image: %v", err)
			return "", errorx.Unknown
		}

		data = buf.Bytes()
	}

	resp, err := store.Upload(ctx, &storage.UploadObject{
		Prefix:   "proofs",
		FileName: name,
		Mime:     "image/" + format,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload proof image: %v", err)
		return "", errorx.New(errorx.Internal, "Unable to upload image")
	}

	return resp.Url, nil
}
