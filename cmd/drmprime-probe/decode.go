//go:build linux

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	neturl "net/url"
	"os"

	"github.com/asticode/go-astiav"
	"github.com/dustin/go-humanize"
	"github.com/xaionaro-go/drmprime/decoder"
	"github.com/xaionaro-go/drmprime/drm"
	"github.com/xaionaro-go/drmprime/egl"
	"github.com/xaionaro-go/drmprime/esdrm"
	"github.com/xaionaro-go/drmprime/glconv"
	"github.com/xaionaro-go/drmprime/logger"
	"github.com/xaionaro-go/drmprime/picture"
	"github.com/xaionaro-go/drmprime/types"
	"github.com/xaionaro-go/drmprime/urltools"
)

func decodeAndImport(
	ctx context.Context,
	cfg Config,
	platform *egl.Platform,
	url string,
) (_err error) {
	logger.Debugf(ctx, "decodeAndImport(%s)", url)
	defer func() { logger.Debugf(ctx, "/decodeAndImport(%s): %v", url, _err) }()

	fmtCtx := astiav.AllocFormatContext()
	if fmtCtx == nil {
		return fmt.Errorf("unable to allocate a format context: %w", types.ErrNoMem)
	}
	defer fmtCtx.Free()

	inputFormat, err := findInputFormat(url)
	if err != nil {
		return err
	}
	if err := fmtCtx.OpenInput(url, inputFormat, nil); err != nil {
		return fmt.Errorf("unable to open '%s': %w", url, err)
	}
	defer fmtCtx.CloseInput()

	if err := fmtCtx.FindStreamInfo(nil); err != nil {
		return fmt.Errorf("unable to get the stream info: %w", err)
	}

	var stream *astiav.Stream
	for _, s := range fmtCtx.Streams() {
		if s.CodecParameters().MediaType() == astiav.MediaTypeVideo {
			stream = s
			break
		}
	}
	if stream == nil {
		return fmt.Errorf("no video streams in '%s'", url)
	}
	params := stream.CodecParameters()

	format := types.VideoFormat{
		Chroma: cfg.Chroma,
		Width:  uint32(params.Width()),
		Height: uint32(params.Height()),
	}
	fmt.Printf("stream #%d: %s %s\n", stream.Index(), params.CodecID(), format)

	importer, err := glconv.Open(ctx, platform, format, cfg.GLConv)
	if err != nil {
		return err
	}
	defer importer.Close(ctx)

	pool, err := importer.GetPool(ctx, cfg.PoolSize)
	if err != nil {
		return err
	}
	defer pool.Close(ctx)

	dec, err := decoder.New(ctx, params, cfg.Decoder)
	if err != nil {
		return err
	}
	defer dec.Close(ctx)
	fmt.Printf("decoder: %s\n", dec)

	textures := platform.GenTextures(format.Chroma.PlaneCount())
	defer platform.DeleteTextures(textures)
	widths, heights := glconv.PlaneSizes(format)

	pkt := astiav.AllocPacket()
	defer pkt.Free()

	var imported uint
	drain := func() error {
		for imported < cfg.MaxFrames {
			pic, err := dec.ReceivePicture(ctx, pool)
			if err != nil {
				if errors.Is(err, decoder.ErrNoFrame) {
					return nil
				}
				return err
			}
			err = importPicture(ctx, importer, pic, textures, widths, heights, imported)
			pic.Release()
			if err != nil {
				return err
			}
			imported++
		}
		return nil
	}

	for imported < cfg.MaxFrames {
		if err := fmtCtx.ReadFrame(pkt); err != nil {
			if !errors.Is(err, astiav.ErrEof) {
				return fmt.Errorf("unable to read a packet: %w", err)
			}
			if err := dec.Flush(ctx); err != nil {
				return err
			}
			if err := drain(); err != nil {
				return err
			}
			break
		}
		if pkt.StreamIndex() != stream.Index() {
			pkt.Unref()
			continue
		}

		err := dec.SendPacket(ctx, pkt)
		for errors.Is(err, decoder.ErrNeedDrain) && imported < cfg.MaxFrames {
			if err = drain(); err != nil {
				break
			}
			err = dec.SendPacket(ctx, pkt)
		}
		pkt.Unref()
		if err != nil && !errors.Is(err, decoder.ErrNeedDrain) {
			return err
		}
		if err := drain(); err != nil {
			return err
		}
	}

	stats, err := json.Marshal(importer.GetStats())
	if err != nil {
		return fmt.Errorf("unable to serialize the statistics: %w", err)
	}
	fmt.Printf("imported %d frames without copying: %s\n", imported, stats)
	if imported == 0 {
		return errEndOfInput
	}
	return nil
}

func importPicture(
	ctx context.Context,
	importer *glconv.Importer,
	pic *picture.Picture,
	textures []glconv.Texture,
	widths, heights []int32,
	idx uint,
) error {
	desc := esdrm.GetData(ctx, pic).DRMFrameDescriptor()
	if err := importer.UpdateTextures(ctx, pic, textures, widths, heights); err != nil {
		return fmt.Errorf("unable to import frame #%d (%s): %w", idx, desc, err)
	}

	fmt.Printf("frame #%d: %s\n", idx, desc)
	for i, obj := range desc.Objects {
		fmt.Printf("\tobject #%d: fd %d (open: %t), %s, modifier %s\n", i, obj.FD, drm.IsFDOpen(obj.FD), humanize.IBytes(obj.Size), obj.Modifier)
	}
	if layer := desc.Layer(); layer != nil {
		for i, plane := range layer.Planes {
			fmt.Printf("\tplane #%d: object #%d, offset %s, pitch %d -> texture %d\n",
				i, plane.ObjectIndex, humanize.IBytes(uint64(plane.Offset)), plane.Pitch, textures[i])
		}
	}
	return nil
}

func findInputFormat(input string) (*astiav.InputFormat, error) {
	if path, ok := urltools.LocalPath(input); ok {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("unable to access '%s': %w", path, err)
		}
	}
	u, err := neturl.Parse(input)
	if err != nil {
		return nil, nil
	}
	name := urltools.InputFormatNameFromURL(u)
	if name == "" {
		return nil, nil
	}
	inputFormat := astiav.FindInputFormat(name)
	if inputFormat == nil {
		return nil, fmt.Errorf("libav has no '%s' demuxer", name)
	}
	return inputFormat, nil
}
