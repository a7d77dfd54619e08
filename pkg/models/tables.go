package models

// Command vocabulary shared by the MP-40, MP-50 and MP-60 processors.
var mpCommands = map[Param]string{
	ParamDevice:                    "DEVICE",
	ParamVerbose:                   "VERB",
	ParamPing:                      "PING",
	ParamPong:                      "PONG",
	ParamPower:                     "POWER",
	ParamPowerOn:                   "POWERONMAIN",
	ParamPowerOff:                  "POWEROFFMAIN",
	ParamVolume:                    "VOL",
	ParamMute:                      "MUTE",
	ParamMuteOn:                    "MUTEON",
	ParamMuteOff:                   "MUTEOFF",
	ParamSourcesCount:              "SRCCOUNT",
	ParamSource:                    "SRC",
	ParamSourceList:                "SRCS",
	ParamAudioIn:                   "AUDIN",
	ParamVideoIn:                   "VIDIN",
	ParamStreamType:                "STREAMTYPE",
	ParamAudioModesCount:           "AUDMODECOUNT",
	ParamAudioMode:                 "AUDMODE",
	ParamAudioModel:                "AUDMODEL",
	ParamAudioType:                 "AUDTYPE",
	ParamVideoType:                 "VIDTYPE",
	ParamRoomPerfectPositionsCount: "RPFOCCOUNT",
	ParamRoomPerfectPosition:       "RPFOC",
	ParamRoomPerfectPositionList:   "RPFOCS",
	ParamVoicingsCount:             "RPVOICOUNT",
	ParamVoicing:                   "RPVOI",
	ParamVoicingList:               "RPVOIS",
	ParamLipSync:                   "LIPSYNC",
	ParamZoneBPower:                "POWERZONE2",
	ParamZoneBPowerOn:              "POWERONZONE2",
	ParamZoneBPowerOff:             "POWEROFFZONE2",
	ParamZoneBVolume:               "ZVOL",
	ParamZoneBMute:                 "ZMUTE",
	ParamZoneBMuteOn:               "ZMUTEON",
	ParamZoneBMuteOff:              "ZMUTEOFF",
	ParamZoneBSourcesCount:         "ZSRCCOUNT",
	ParamZoneBSource:               "ZSRC",
	ParamZoneBSourceList:           "ZSRCS",
	ParamZoneBAudioIn:              "ZAUDIN",
	ParamZoneBStreamType:           "ZSTREAMTYPE",
	ParamTrimBass:                  "TRIMBASS",
	ParamTrimCentre:                "TRIMCENTER",
	ParamTrimHeight:                "TRIMHEIGHT",
	ParamTrimLFE:                   "TRIMLFE",
	ParamTrimSurround:              "TRIMSURRS",
	ParamTrimTreble:                "TRIMTREBLE",
	ParamTrimTrebleSet:             "TRIMTREB",
}

// Setup sequence shared by the MP series: enable verbose push mode, then
// query identity, the enumeration lists, and finally every live value.
// List queries come before the current-value queries that select from them.
var mpSetup = []Param{
	ParamVerbose,
	ParamDevice,
	ParamPower,
	ParamZoneBPower,
	ParamAudioModel,
	ParamSourceList,
	ParamZoneBSourceList,
	ParamRoomPerfectPositionList,
	ParamVoicingList,
	ParamAudioMode,
	ParamSource,
	ParamZoneBSource,
	ParamRoomPerfectPosition,
	ParamVoicing,
	ParamVideoType,
	ParamStreamType,
	ParamLipSync,
	ParamZoneBStreamType,
	ParamAudioIn,
	ParamVideoIn,
	ParamAudioType,
	ParamVolume,
	ParamZoneBVolume,
	ParamMute,
	ParamZoneBMute,
	ParamTrimBass,
	ParamTrimCentre,
	ParamTrimHeight,
	ParamTrimLFE,
	ParamTrimSurround,
	ParamTrimTrebleSet,
}

var mpTrims = []Param{
	ParamTrimBass,
	ParamTrimCentre,
	ParamTrimHeight,
	ParamTrimLFE,
	ParamTrimSurround,
	ParamTrimTreble,
}

// Command vocabulary shared by the TDAI-1120 and TDAI-2170 amplifiers.
var tdaiCommands = map[Param]string{
	ParamDevice:                    "DEVICE",
	ParamVerbose:                   "VERB",
	ParamPing:                      "PING",
	ParamPong:                      "PONG",
	ParamPower:                     "PWR",
	ParamPowerOn:                   "ON",
	ParamPowerOff:                  "OFF",
	ParamVolume:                    "VOL",
	ParamMute:                      "MUTE",
	ParamMuteOn:                    "MUTEON",
	ParamMuteOff:                   "MUTEOFF",
	ParamSourcesCount:              "SRCCOUNT",
	ParamSource:                    "SRC",
	ParamSourceList:                "SRCLIST",
	ParamStreamType:                "STREAMTYPE",
	ParamRoomPerfectPositionsCount: "RPCOUNT",
	ParamRoomPerfectPosition:       "RP",
	ParamRoomPerfectPositionList:   "RPLIST",
	ParamVoicingsCount:             "VOICOUNT",
	ParamVoicing:                   "VOI",
	ParamVoicingList:               "VOILIST",
	ParamBalance:                   "BAL",
	ParamTrimBass:                  "BASS",
	ParamTrimTreble:                "TREBLE",
	ParamTrimTrebleSet:             "TREBLE",
}

// Command vocabulary for the TDAI-3400, an I-prefixed variant of the TDAI
// protocol. The list queries keep their unprefixed form.
var tdai3400Commands = map[Param]string{
	ParamDevice:                    "IDEVICE",
	ParamVerbose:                   "VERB",
	ParamPing:                      "IPING",
	ParamPong:                      "IPONG",
	ParamPower:                     "IPWR",
	ParamPowerOn:                   "ION",
	ParamPowerOff:                  "IOFF",
	ParamVolume:                    "IVOL",
	ParamMute:                      "IMUTE",
	ParamMuteOn:                    "IMUTEON",
	ParamMuteOff:                   "IMUTEOFF",
	ParamSourcesCount:              "ISRCCOUNT",
	ParamSource:                    "ISRC",
	ParamSourceList:                "SRCLIST",
	ParamStreamType:                "ISTREAMTYPE",
	ParamRoomPerfectPositionsCount: "IRPCOUNT",
	ParamRoomPerfectPosition:       "IRP",
	ParamRoomPerfectPositionList:   "RPLIST",
	ParamVoicingsCount:             "IVOICOUNT",
	ParamVoicing:                   "IVOI",
	ParamVoicingList:               "VOILIST",
	ParamBalance:                   "BAL",
	ParamTrimBass:                  "IBASS",
	ParamTrimTreble:                "ITREBLE",
	ParamTrimTrebleSet:             "ITREBLE",
}

var tdaiSetup = []Param{
	ParamVerbose,
	ParamDevice,
	ParamPower,
	ParamSourceList,
	ParamRoomPerfectPositionList,
	ParamVoicingList,
	ParamSource,
	ParamRoomPerfectPosition,
	ParamVoicing,
	ParamStreamType,
	ParamVolume,
	ParamMute,
	ParamTrimBass,
	ParamTrimTrebleSet,
	ParamBalance,
}

var tdaiTrims = []Param{
	ParamTrimBass,
	ParamTrimTreble,
}

// Hardware tables. Indices come from the devices themselves and are stable
// across firmware versions.

var mpStreamTypes = map[int]string{
	0: "None",
	1: "vTuner",
	2: "Spotify",
	3: "AirPlay",
	4: "UPnP",
	5: "Storage",
	6: "Roon ready",
	7: "Unknown",
}

var mp40AudioInputs = map[int]string{
	0:  "None",
	1:  "HDMI",
	3:  "Spdif 1 (Opt.)",
	4:  "Spdif 2 (Opt.)",
	5:  "Spdif 3 (Opt.)",
	6:  "Spdif 4 (Opt.)",
	7:  "Spdif 5 (AES)",
	8:  "Spdif 6 (Coax)",
	9:  "Spdif 7 (Coax)",
	10: "Spdif 8 (Coax)",
	11: "Internal Player",
	12: "USB",
	24: "Audio Return Channel",
}

var mpAudioInputs = map[int]string{
	0:  "None",
	1:  "HDMI",
	3:  "Spdif 1 (Opt.)",
	4:  "Spdif 2 (Opt.)",
	5:  "Spdif 3 (Opt.)",
	6:  "Spdif 4 (Opt.)",
	7:  "Spdif 5 (AES)",
	8:  "Spdif 6 (Coax)",
	9:  "Spdif 7 (Coax)",
	10: "Spdif 8 (Coax)",
	11: "Internal Player",
	12: "USB",
	20: "16-Channel (optional AES module)",
	21: "16-Channel 2.0 (optional AES module)",
	22: "16-Channel 5.1 (optional AES module)",
	23: "16-Channel 7.1 (optional AES module)",
	24: "Audio Return Channel",
	35: "vTuner",
	36: "TIDAL",
	37: "Spotify",
	38: "Airplay",
	39: "Roon",
	40: "DLNA",
	41: "Storage",
	42: "airable",
}

var mp40VideoInputs = map[int]string{
	0: "None",
	1: "HDMI 1",
	2: "HDMI 2",
	3: "HDMI 3",
	9: "Internal",
}

var mpVideoInputs = map[int]string{
	0: "None",
	1: "HDMI 1",
	2: "HDMI 2",
	3: "HDMI 3",
	4: "HDMI 4",
	5: "HDMI 5",
	6: "HDMI 6",
	7: "HDMI 7",
	8: "HDMI 8",
	9: "Internal",
}

var mpVideoOutputs = map[int]string{
	0: "None",
	1: "HDMI Out 1",
	2: "HDMI Out 2",
	3: "HDBT Out",
}

var tdai1120StreamTypes = map[int]string{
	0: "None",
	1: "vTuner",
	2: "Spotify",
	3: "AirPlay",
	4: "uPnP",
	5: "USB File",
	6: "Roon Ready",
	7: "Bluetooth",
	8: "GoogleCast",
	9: "Unknown",
}

var tdai2170StreamTypes = map[int]string{
	0: "None",
	1: "vTuner",
	2: "Spotify",
	3: "AirPlay",
	4: "uPnP",
	5: "USB File",
	6: "Roon Ready",
	7: "Unknown",
}

var tdai3400StreamTypes = map[int]string{
	0: "None",
	1: "vTuner",
	2: "Spotify",
	3: "AirPlay",
	4: "uPnP",
	5: "USB File",
	6: "Roon Ready",
	7: "Bluetooth",
	8: "TIDAL",
	9: "Unknown",
}

// Fixed-point scale factors (wire units per dB). See the package
// documentation for the per-family mapping.
const (
	mpVolumeScale   = 20
	tdaiVolumeScale = 10
	trimScale       = 10
)

var descriptors = map[Model]*Descriptor{
	MP40: {
		Name:           "mp-40",
		Manufacturer:   "Lyngdorf",
		Commands:       mpCommands,
		Setup:          mpSetup,
		HasZoneB:       true,
		HasVideo:       true,
		HasRoomPerfect: true,
		Trims:          mpTrims,
		VolumeScale:    mpVolumeScale,
		TrimScale:      trimScale,
		VolumeMin:      -99.9,
		VolumeMax:      10.0,
		AudioInputs:    mp40AudioInputs,
		VideoInputs:    mp40VideoInputs,
		StreamTypes:    mpStreamTypes,
	},
	MP50: {
		Name:           "mp-50",
		Manufacturer:   "Lyngdorf",
		Commands:       mpCommands,
		Setup:          mpSetup,
		HasZoneB:       true,
		HasVideo:       true,
		HasRoomPerfect: true,
		Trims:          mpTrims,
		VolumeScale:    mpVolumeScale,
		TrimScale:      trimScale,
		VolumeMin:      -99.9,
		VolumeMax:      10.0,
		AudioInputs:    mpAudioInputs,
		VideoInputs:    mpVideoInputs,
		VideoOutputs:   mpVideoOutputs,
		StreamTypes:    mpStreamTypes,
	},
	MP60: {
		Name:           "mp-60",
		Manufacturer:   "Lyngdorf",
		Commands:       mpCommands,
		Setup:          mpSetup,
		HasZoneB:       true,
		HasVideo:       true,
		HasRoomPerfect: true,
		Trims:          mpTrims,
		VolumeScale:    mpVolumeScale,
		TrimScale:      trimScale,
		VolumeMin:      -99.9,
		VolumeMax:      10.0,
		AudioInputs:    mpAudioInputs,
		VideoInputs:    mpVideoInputs,
		VideoOutputs:   mpVideoOutputs,
		StreamTypes:    mpStreamTypes,
	},
	TDAI1120: {
		Name:           "tdai-1120",
		Manufacturer:   "Lyngdorf",
		Commands:       tdaiCommands,
		Setup:          tdaiSetup,
		HasRoomPerfect: true,
		Trims:          tdaiTrims,
		VolumeScale:    tdaiVolumeScale,
		TrimScale:      trimScale,
		VolumeMin:      -99.9,
		VolumeMax:      10.0,
		StreamTypes:    tdai1120StreamTypes,
	},
	TDAI2170: {
		Name:           "tdai-2170",
		Manufacturer:   "Lyngdorf",
		Commands:       tdaiCommands,
		Setup:          tdaiSetup,
		HasRoomPerfect: true,
		Trims:          tdaiTrims,
		VolumeScale:    tdaiVolumeScale,
		TrimScale:      trimScale,
		VolumeMin:      -99.9,
		VolumeMax:      10.0,
		StreamTypes:    tdai2170StreamTypes,
	},
	TDAI3400: {
		Name:           "tdai-3400",
		Manufacturer:   "Lyngdorf",
		Commands:       tdai3400Commands,
		Setup:          tdaiSetup,
		HasRoomPerfect: true,
		Trims:          tdaiTrims,
		VolumeScale:    tdaiVolumeScale,
		TrimScale:      trimScale,
		VolumeMin:      -99.9,
		VolumeMax:      10.0,
		StreamTypes:    tdai3400StreamTypes,
	},
}
