package tui

import (
	"image"

	"photocull/internal/log"
	"photocull/internal/metadata"
	"photocull/internal/thumbnail"
	"photocull/internal/tui/components"
	"photocull/internal/tui/messages"
	"photocull/internal/tui/views"
	"photocull/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// maxLoadsPerUpdate bounds how many decodes one frame queues.
const maxLoadsPerUpdate = 32

// scheduleLoads queues thumbnail decodes for every tile on screen and
// the preview, plus the metadata of the primary photo.
func (m *Model) scheduleLoads() []tea.Cmd {
	if m.sess.Folder() == "" || m.width == 0 {
		return nil
	}
	var cmds []tea.Cmd
	queue := func(id types.PhotoID, box image.Point) {
		if len(cmds) >= maxLoadsPerUpdate || box.X < 1 || box.Y < 2 {
			return
		}
		k := thumbnail.Key{ID: id, Size: box}
		if m.pending[k] || m.failed[k] || m.pixels[k] != nil {
			return
		}
		rec, ok := m.sess.Photos().Get(id)
		if !ok {
			return
		}
		m.pending[k] = true
		cmds = append(cmds, m.loadThumbnail(rec, box))
	}

	primary := m.sess.Selection().PrimaryID()
	if primary != types.None {
		queue(primary, views.PreviewImageBox(m.Geometry().Preview))
		if rec, ok := m.sess.Photos().Get(primary); ok && !m.reading[primary] {
			if _, done := m.info[primary]; !done {
				m.reading[primary] = true
				cmds = append(cmds, readMetadata(rec))
			}
		}
	}

	for _, pane := range types.Panes {
		tiles := m.tiles(pane)
		ids := m.sess.Photos().VisibleIDs(pane)
		box := tiles.PixelBox()
		for i, id := range ids {
			if _, ok := tiles.TileRect(i, m.scroll[pane]); ok {
				queue(id, box)
			}
		}
	}
	return cmds
}

// loadThumbnail decodes rec through the shared cache and renders it. The
// semaphore bounds concurrent decodes.
func (m *Model) loadThumbnail(rec types.PhotoRecord, box image.Point) tea.Cmd {
	ctx, cache, sem := m.ctx, m.sess.Thumbnails(), m.decode
	return func() tea.Msg {
		msg := messages.ThumbnailLoadedMsg{ID: rec.ID, Size: box}
		if err := sem.Acquire(ctx, 1); err != nil {
			msg.Err = err
			return msg
		}
		defer sem.Release(1)

		thumb, err := cache.Load(rec.ID, rec.SourcePath, box)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Lines = components.HalfBlocks(thumb.Image, box.X, box.Y/2)
		msg.Original = thumb.Original
		return msg
	}
}

func (m *Model) thumbnailLoaded(msg messages.ThumbnailLoadedMsg) {
	k := thumbnail.Key{ID: msg.ID, Size: msg.Size}
	delete(m.pending, k)
	if !m.sess.Photos().Contains(msg.ID) {
		return
	}
	if msg.Err != nil {
		if m.ctx.Err() == nil {
			m.failed[k] = true
			log.LogWithError(msg.Err).Debug("Thumbnail unavailable")
		}
		return
	}
	if len(m.pixels) >= 2*m.sess.Config().Thumbnails.CacheEntries {
		m.pixels = make(map[thumbnail.Key][]string)
	}
	m.pixels[k] = msg.Lines
	m.dims[msg.ID] = msg.Original
}

func readMetadata(rec types.PhotoRecord) tea.Cmd {
	return func() tea.Msg {
		info, err := metadata.Read(rec.SourcePath)
		if err != nil {
			info = metadata.Info{Taken: rec.Taken, Size: rec.Size}
		}
		return messages.MetadataMsg{ID: rec.ID, Info: info, Err: err}
	}
}
