// Package seed holds the demo catalog loaded on first boot.
package seed

import (
	"time"

	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
)

type demoListing struct {
	id          string
	name        string
	description string
	version     string
	category    string
	fileURL     string
	fileSize    int64
	downloads   int64
	featured    bool
	createdAt   time.Time
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

var demo = []demoListing{
	{"demo-01", "Adobe Photoshop 2024", "Industry-standard image editing and graphic design software with advanced AI features.", "25.0", "Adobe Creative Suite", "https://example.com/photoshop2024.exe", 2100000000, 45230, true, day(15)},
	{"demo-02", "Adobe Illustrator 2024", "Vector graphics and illustration software for creating logos, icons, and artwork.", "28.0", "Adobe Creative Suite", "https://example.com/illustrator2024.exe", 1800000000, 32150, true, day(8)},
	{"demo-03", "Adobe Premiere Pro 2024", "Professional video editing software for filmmakers and content creators.", "24.0", "Adobe Creative Suite", "https://example.com/premiere2024.exe", 2800000000, 28940, false, day(12)},
	{"demo-04", "Adobe After Effects 2024", "Motion graphics and visual effects software for video post-production.", "24.0", "Adobe Creative Suite", "https://example.com/aftereffects2024.exe", 2800000000, 24670, false, day(10)},
	{"demo-05", "Adobe InDesign 2024", "Desktop publishing software for creating layouts and print designs.", "19.0", "Adobe Creative Suite", "https://example.com/indesign2024.exe", 1600000000, 18450, false, day(14)},
	{"demo-06", "Adobe Lightroom 2024", "Photo editing and organization software for photographers.", "13.0", "Adobe Creative Suite", "https://example.com/lightroom2024.exe", 1400000000, 22180, false, day(9)},
	{"demo-07", "Microsoft Office 2021", "Complete productivity suite including Word, Excel, PowerPoint, and Outlook.", "2021", "Microsoft Office", "https://example.com/office2021.exe", 3200000000, 78940, true, day(10)},
	{"demo-08", "Microsoft Word 2021", "Word processing software for creating documents and reports.", "2021", "Microsoft Office", "https://example.com/word2021.exe", 1200000000, 45670, false, day(11)},
	{"demo-09", "Microsoft Excel 2021", "Spreadsheet software for data analysis and calculations.", "2021", "Microsoft Office", "https://example.com/excel2021.exe", 1100000000, 52340, false, day(13)},
	{"demo-10", "Microsoft PowerPoint 2021", "Presentation software for creating slideshows and presentations.", "2021", "Microsoft Office", "https://example.com/powerpoint2021.exe", 1000000000, 38920, false, day(12)},
	{"demo-11", "Microsoft Outlook 2021", "Email client and personal information manager.", "2021", "Microsoft Office", "https://example.com/outlook2021.exe", 900000000, 34560, false, day(14)},
	{"demo-12", "Windows 11 Pro", "Latest Windows operating system with enhanced security and productivity features.", "23H2", "Microsoft Windows", "https://example.com/windows11pro.iso", 5400000000, 89230, true, day(5)},
	{"demo-13", "Windows 11 Home", "Windows 11 Home edition for personal and home use.", "23H2", "Microsoft Windows", "https://example.com/windows11home.iso", 5200000000, 76540, false, day(6)},
	{"demo-14", "Windows 10 Pro", "Stable Windows 10 Professional edition with extended support.", "22H2", "Microsoft Windows", "https://example.com/windows10pro.iso", 4800000000, 65430, false, day(7)},
	{"demo-15", "Windows 10 Home", "Windows 10 Home edition for personal computers.", "22H2", "Microsoft Windows", "https://example.com/windows10home.iso", 4600000000, 58920, false, day(8)},
}

// DemoCatalog returns the demo listings across the Adobe Creative Suite,
// Microsoft Office and Microsoft Windows categories.
func DemoCatalog() []domsw.Record {
	out := make([]domsw.Record, 0, len(demo))
	for _, d := range demo {
		size := d.fileSize
		out = append(out, domsw.Reconstruct(d.id, domsw.Fields{
			Name:        d.name,
			Description: d.description,
			Version:     d.version,
			Category:    d.category,
			FileURL:     d.fileURL,
			FileSize:    &size,
			Featured:    d.featured,
		}, d.downloads, d.createdAt, d.createdAt))
	}
	return out
}
