package cvpdf

import "testing"

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		subject string
		lang    string
		year    int
		ext     string
		want    string
	}{
		{
			name:    "english pdf",
			subject: "Jasson Gómez",
			lang:    "en",
			year:    2025,
			ext:     "pdf",
			want:    "Jasson_Gomez_CV_EN_2025.pdf",
		},
		{
			name:    "spanish",
			subject: "Jasson Gómez",
			lang:    "es",
			year:    2024,
			ext:     "pdf",
			want:    "Jasson_Gomez_CV_ES_2024.pdf",
		},
		{
			name:    "extension with dot",
			subject: "Ana",
			lang:    "en",
			year:    2025,
			ext:     ".png",
			want:    "Ana_CV_EN_2025.png",
		},
		{
			name:    "no extension",
			subject: "Ana",
			lang:    "en",
			year:    2025,
			want:    "Ana_CV_EN_2025",
		},
		{
			name:    "punctuation runs collapse",
			subject: "  José  María-López, Jr. ",
			lang:    "es",
			year:    2025,
			ext:     "pdf",
			want:    "Jose_Maria_Lopez_Jr_CV_ES_2025.pdf",
		},
		{
			name:    "regional language",
			subject: "Ana",
			lang:    "es-SV",
			year:    2025,
			ext:     "pdf",
			want:    "Ana_CV_ES_SV_2025.pdf",
		},
		{
			name:    "path characters removed",
			subject: "../../etc/passwd",
			lang:    "en",
			year:    2025,
			ext:     "pdf",
			want:    "etc_passwd_CV_EN_2025.pdf",
		},
		{
			name:    "empty subject",
			subject: "",
			lang:    "en",
			year:    2025,
			ext:     "pdf",
			want:    "CV_EN_2025.pdf",
		},
		{
			name:    "non latin subject",
			subject: "李雷",
			lang:    "en",
			year:    2025,
			ext:     "pdf",
			want:    "CV_EN_2025.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Filename(tt.subject, tt.lang, tt.year, tt.ext)
			if got != tt.want {
				t.Errorf("Filename(%q, %q, %d, %q) = %q, want %q", tt.subject, tt.lang, tt.year, tt.ext, got, tt.want)
			}
		})
	}
}
