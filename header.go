package oledgen

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	bytesPerLine = 12
	bootSymbol   = "boot"
	bootName     = "g_oled_boot_animation"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// comment keeps arbitrary text on a single comment line. A trailing backslash
// would splice the next line into the comment so it is dropped, along with
// any whitespace after it.
func comment(s string) string {
	return strings.TrimRight(lineBreaks.Replace(s), "\\ \t\f\v")
}

func frameName(f *Frame) string {
	return "g_oled_anim_" + f.Symbol
}

func tableName(a *Animation) string {
	return "g_oled_anim_" + a.Symbol + "_frames"
}

func descriptorName(a *Animation) string {
	if a.Symbol == bootSymbol {
		return bootName
	}
	return "g_oled_animation_" + a.Symbol
}

func writeBytes(w *bufio.Writer, b []byte) {
	for i := 0; i < len(b); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(b) {
			end = len(b)
		}
		w.WriteString("   ")
		for _, c := range b[i:end] {
			fmt.Fprintf(w, " 0x%02X,", c)
		}
		w.WriteByte('\n')
	}
}

func writeAnimation(w *bufio.Writer, a *Animation) {
	fmt.Fprintf(w, "// Animation: %s\n", comment(a.Name))
	for _, f := range a.Frames {
		fmt.Fprintf(w, "//   %s\n", comment(f.Source))
		fmt.Fprintf(w, "static const uint8_t %s[] = {\n", frameName(f))
		writeBytes(w, f.Bitmap)
		w.WriteString("};\n\n")
	}

	if len(a.Frames) > 0 {
		fmt.Fprintf(w, "static const oled_animation_frame_t %s[] = {\n", tableName(a))
		for _, f := range a.Frames {
			fmt.Fprintf(w, "    { .bitmap = %s, .duration_ms = %d },\n", frameName(f), f.Duration.Milliseconds())
		}
		w.WriteString("};\n")
	} else {
		fmt.Fprintf(w, "static const oled_animation_frame_t *const %s = NULL;\n", tableName(a))
	}

	frames := "NULL"
	if len(a.Frames) > 0 {
		frames = tableName(a)
	}

	fmt.Fprintf(w, "static const oled_animation_t %s = {\n", descriptorName(a))
	fmt.Fprintf(w, "    .width = %d,\n", a.Width)
	fmt.Fprintf(w, "    .height = %d,\n", a.Height)
	fmt.Fprintf(w, "    .bit_packed = %t,\n", a.BitPacked)
	fmt.Fprintf(w, "    .frame_count = %d,\n", len(a.Frames))
	fmt.Fprintf(w, "    .frames = %s,\n", frames)
	w.WriteString("};\n\n")
}

// WriteHeader writes the C header for animations to w. source is only used
// in the provenance comment. If no animation has the symbol "boot" an empty
// boot animation is added so the firmware always has one to link against.
func WriteHeader(w io.Writer, source string, animations []*Animation) error {
	wr := bufio.NewWriter(w)

	wr.WriteString("// AUTO-GENERATED FILE. DO NOT EDIT.\n")
	fmt.Fprintf(wr, "// Source: %s\n\n", comment(source))
	wr.WriteString("#pragma once\n\n")
	wr.WriteString("#include \"oled.h\"\n\n")

	boot := false
	for _, a := range animations {
		writeAnimation(wr, a)
		if a.Symbol == bootSymbol {
			boot = true
		}
	}

	if !boot {
		fmt.Fprintf(wr, "static const oled_animation_t %s = {\n", bootName)
		wr.WriteString("    .width = 0, .height = 0, .bit_packed = true, .frame_count = 0, .frames = NULL,\n")
		wr.WriteString("};\n\n")
	}

	return wr.Flush()
}
