package main

import (
	"fmt"
	"strconv"
	"strings"

	"Resonator/internal/calc/bowl"
)

const usage = "Commands:\n" +
	"/metals - list the metal catalog\n" +
	"/bowl <metal> [ratio] [hz] - bowl dimensions, e.g. /bowl iron 531441/524288"

type Reply struct {
	Text   string
	Markup *InlineKeyboardMarkup
}

// handleCommand answers a chat message. Unknown text gets the usage line.
func handleCommand(text string) Reply {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Reply{Text: usage}
	}
	cmd := strings.ToLower(fields[0])
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	switch cmd {
	case "/metals":
		return Reply{Text: metalList()}
	case "/bowl":
		return bowlReply(fields[1:])
	default:
		return Reply{Text: usage}
	}
}

func metalList() string {
	var b strings.Builder
	for _, m := range bowl.Metals() {
		mat, _ := m.Material()
		fmt.Fprintf(&b, "%s (%s): %.0f m/s, %s\n", mat.Name, mat.Structure, mat.SoundSpeedMS, m)
	}
	return strings.TrimSpace(b.String())
}

func bowlReply(args []string) Reply {
	var in bowl.Input
	if len(args) > 0 {
		in.Metal = args[0]
	}
	if len(args) > 1 {
		in.Ratio = args[1]
	}
	if len(args) > 2 {
		hz, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return Reply{Text: "Bad frequency: " + args[2]}
		}
		in.SelectedHz = &hz
	}
	metal, r, err := in.Resolve()
	if err != nil {
		return Reply{Text: "Error: " + err.Error()}
	}
	params, err := bowl.Calculate(in)
	if err != nil {
		return Reply{Text: "Error: " + err.Error()}
	}
	return Reply{Text: formatParams(params), Markup: octaveKeyboard(metal, r, params)}
}

// handleOctave answers a press on an octave button.
func handleOctave(data string) (Reply, error) {
	parts := strings.Split(data, "|")
	if len(parts) != 4 || parts[0] != "o" {
		return Reply{}, fmt.Errorf("bad callback data %q", data)
	}
	metal, err := bowl.ParseMetal(parts[1])
	if err != nil {
		return Reply{}, err
	}
	r, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Reply{}, fmt.Errorf("bad ratio %q", parts[2])
	}
	idx, err := strconv.Atoi(parts[3])
	if err != nil {
		return Reply{}, fmt.Errorf("bad octave index %q", parts[3])
	}
	c, err := bowl.New(metal, r)
	if err != nil {
		return Reply{}, err
	}
	octaves := c.Params(bowl.Selection{}).AvailableOctaves
	if idx < 0 || idx >= len(octaves) {
		return Reply{}, fmt.Errorf("octave %d out of range", idx)
	}
	params := c.Params(bowl.Select(octaves[idx]))
	return Reply{Text: formatParams(params), Markup: octaveKeyboard(metal, r, params)}, nil
}

func formatParams(p bowl.Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s bowl, thickness ratio %.6f\n", p.Metal, p.ThicknessRatio)
	fmt.Fprintf(&b, "Averaged atomic radius: %s\n", bowl.FormatLength(p.AveragedRadiusM))
	fmt.Fprintf(&b, "Fundamental wavelength: %s\n", bowl.FormatLength(p.FundamentalWavelengthM))
	fmt.Fprintf(&b, "Theoretical fundamental: %s\n", bowl.FormatSI(p.FundamentalHz))
	fmt.Fprintf(&b, "Selected frequency: %s\n", bowl.FormatFrequency(p.SelectedHz))
	fmt.Fprintf(&b, "Wavelength in metal: %s\n", bowl.FormatLength(p.WavelengthInMetalM))
	fmt.Fprintf(&b, "Wavelength in air: %s\n", bowl.FormatLength(p.WavelengthInAirM))
	fmt.Fprintf(&b, "Inner diameter: %s\n", bowl.FormatLength(p.Dimensions.InnerDiameterM))
	fmt.Fprintf(&b, "Outer diameter: %s\n", bowl.FormatLength(p.Dimensions.OuterDiameterM))
	fmt.Fprintf(&b, "Thickness: %s", bowl.FormatLength(p.Dimensions.ThicknessM))
	return b.String()
}

func octaveKeyboard(metal bowl.Metal, r float64, p bowl.Params) *InlineKeyboardMarkup {
	ratio := strconv.FormatFloat(r, 'g', -1, 64)
	var rows [][]InlineKeyboardButton
	var row []InlineKeyboardButton
	for i, hz := range p.AvailableOctaves {
		label := fmt.Sprintf("%.2f", hz)
		if hz == p.SelectedHz {
			label = "• " + label
		}
		row = append(row, InlineKeyboardButton{
			Text:         label,
			CallbackData: fmt.Sprintf("o|%s|%s|%d", metal, ratio, i),
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}
