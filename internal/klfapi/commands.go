package klfapi

import "fmt"

// Command is a KLF200 command code as carried in the transfer encoding.
// Negative values are internal pseudo-commands.
type Command int16

// Internal pseudo-commands. These never appear on the wire.
const (
	CmdUnknown     Command = -1 // unrecognized wire code
	CmdShutdown    Command = -2 // connection shutdown marker
	CmdReceiveOnly Command = -3 // transaction that sends no request
)

// Gateway commands.
const (
	GWErrorNTF              Command = 0x0000
	GWRebootREQ             Command = 0x0001
	GWRebootCFM             Command = 0x0002
	GWSetFactoryDefaultREQ  Command = 0x0003
	GWSetFactoryDefaultCFM  Command = 0x0004
	GWGetVersionREQ         Command = 0x0008
	GWGetVersionCFM         Command = 0x0009
	GWGetProtocolVersionREQ Command = 0x000A
	GWGetProtocolVersionCFM Command = 0x000B
	GWGetStateREQ           Command = 0x000C
	GWGetStateCFM           Command = 0x000D
	GWLeaveLearnStateREQ    Command = 0x000E
	GWLeaveLearnStateCFM    Command = 0x000F

	GWGetNetworkSetupREQ Command = 0x00E0
	GWGetNetworkSetupCFM Command = 0x00E1
	GWSetNetworkSetupREQ Command = 0x00E2
	GWSetNetworkSetupCFM Command = 0x00E3

	GWCSGetSystemTableDataREQ Command = 0x0100
	GWCSGetSystemTableDataCFM Command = 0x0101
	GWCSGetSystemTableDataNTF Command = 0x0102
	GWCSDiscoverNodesREQ      Command = 0x0103
	GWCSDiscoverNodesCFM      Command = 0x0104
	GWCSDiscoverNodesNTF      Command = 0x0105
	GWCSRemoveNodesREQ        Command = 0x0106
	GWCSRemoveNodesCFM        Command = 0x0107

	GWGetNodeInformationREQ       Command = 0x0200
	GWGetNodeInformationCFM       Command = 0x0201
	GWGetAllNodesInformationREQ   Command = 0x0202
	GWGetAllNodesInformationCFM   Command = 0x0203
	GWGetAllNodesInformationNTF   Command = 0x0204
	GWGetAllNodesInfoFinishedNTF  Command = 0x0205
	GWSetNodeVariationREQ         Command = 0x0206
	GWSetNodeVariationCFM         Command = 0x0207
	GWSetNodeNameREQ              Command = 0x0208
	GWSetNodeNameCFM              Command = 0x0209
	GWSetNodeVelocityREQ          Command = 0x020A
	GWSetNodeVelocityCFM          Command = 0x020B
	GWNodeInformationChangedNTF   Command = 0x020C
	GWGetNodeInformationNTF       Command = 0x0210
	GWNodeStatePositionChangedNTF Command = 0x0211

	GWHouseStatusMonitorEnableREQ  Command = 0x0240
	GWHouseStatusMonitorEnableCFM  Command = 0x0241
	GWHouseStatusMonitorDisableREQ Command = 0x0242
	GWHouseStatusMonitorDisableCFM Command = 0x0243

	GWCommandSendREQ          Command = 0x0300
	GWCommandSendCFM          Command = 0x0301
	GWCommandRunStatusNTF     Command = 0x0302
	GWCommandRemainingTimeNTF Command = 0x0303
	GWSessionFinishedNTF      Command = 0x0304
	GWStatusRequestREQ        Command = 0x0305
	GWStatusRequestCFM        Command = 0x0306
	GWStatusRequestNTF        Command = 0x0307
	GWWinkSendREQ             Command = 0x0308
	GWWinkSendCFM             Command = 0x0309
	GWWinkSendNTF             Command = 0x030A

	GWSetLimitationREQ       Command = 0x0310
	GWSetLimitationCFM       Command = 0x0311
	GWGetLimitationStatusREQ Command = 0x0312
	GWGetLimitationStatusCFM Command = 0x0313
	GWLimitationStatusNTF    Command = 0x0314

	GWModeSendREQ Command = 0x0320
	GWModeSendCFM Command = 0x0321
	GWModeSendNTF Command = 0x0322

	GWGetSceneListREQ Command = 0x040C
	GWGetSceneListCFM Command = 0x040D
	GWGetSceneListNTF Command = 0x040E

	GWActivateSceneREQ Command = 0x0412
	GWActivateSceneCFM Command = 0x0413
	GWStopSceneREQ     Command = 0x0415
	GWStopSceneCFM     Command = 0x0416

	GWActivateProductGroupREQ Command = 0x0447
	GWActivateProductGroupCFM Command = 0x0448
	GWActivateProductGroupNTF Command = 0x0449

	GWPasswordEnterREQ  Command = 0x3000
	GWPasswordEnterCFM  Command = 0x3001
	GWPasswordChangeREQ Command = 0x3002
	GWPasswordChangeCFM Command = 0x3003
	GWPasswordChangeNTF Command = 0x3004
)

var commandNames = map[Command]string{
	CmdUnknown:     "UNKNOWN",
	CmdShutdown:    "SHUTDOWN",
	CmdReceiveOnly: "RECEIVE_ONLY",

	GWErrorNTF:              "GW_ERROR_NTF",
	GWRebootREQ:             "GW_REBOOT_REQ",
	GWRebootCFM:             "GW_REBOOT_CFM",
	GWSetFactoryDefaultREQ:  "GW_SET_FACTORY_DEFAULT_REQ",
	GWSetFactoryDefaultCFM:  "GW_SET_FACTORY_DEFAULT_CFM",
	GWGetVersionREQ:         "GW_GET_VERSION_REQ",
	GWGetVersionCFM:         "GW_GET_VERSION_CFM",
	GWGetProtocolVersionREQ: "GW_GET_PROTOCOL_VERSION_REQ",
	GWGetProtocolVersionCFM: "GW_GET_PROTOCOL_VERSION_CFM",
	GWGetStateREQ:           "GW_GET_STATE_REQ",
	GWGetStateCFM:           "GW_GET_STATE_CFM",
	GWLeaveLearnStateREQ:    "GW_LEAVE_LEARN_STATE_REQ",
	GWLeaveLearnStateCFM:    "GW_LEAVE_LEARN_STATE_CFM",

	GWGetNetworkSetupREQ: "GW_GET_NETWORK_SETUP_REQ",
	GWGetNetworkSetupCFM: "GW_GET_NETWORK_SETUP_CFM",
	GWSetNetworkSetupREQ: "GW_SET_NETWORK_SETUP_REQ",
	GWSetNetworkSetupCFM: "GW_SET_NETWORK_SETUP_CFM",

	GWCSGetSystemTableDataREQ: "GW_CS_GET_SYSTEMTABLE_DATA_REQ",
	GWCSGetSystemTableDataCFM: "GW_CS_GET_SYSTEMTABLE_DATA_CFM",
	GWCSGetSystemTableDataNTF: "GW_CS_GET_SYSTEMTABLE_DATA_NTF",
	GWCSDiscoverNodesREQ:      "GW_CS_DISCOVER_NODES_REQ",
	GWCSDiscoverNodesCFM:      "GW_CS_DISCOVER_NODES_CFM",
	GWCSDiscoverNodesNTF:      "GW_CS_DISCOVER_NODES_NTF",
	GWCSRemoveNodesREQ:        "GW_CS_REMOVE_NODES_REQ",
	GWCSRemoveNodesCFM:        "GW_CS_REMOVE_NODES_CFM",

	GWGetNodeInformationREQ:       "GW_GET_NODE_INFORMATION_REQ",
	GWGetNodeInformationCFM:       "GW_GET_NODE_INFORMATION_CFM",
	GWGetNodeInformationNTF:       "GW_GET_NODE_INFORMATION_NTF",
	GWGetAllNodesInformationREQ:   "GW_GET_ALL_NODES_INFORMATION_REQ",
	GWGetAllNodesInformationCFM:   "GW_GET_ALL_NODES_INFORMATION_CFM",
	GWGetAllNodesInformationNTF:   "GW_GET_ALL_NODES_INFORMATION_NTF",
	GWGetAllNodesInfoFinishedNTF:  "GW_GET_ALL_NODES_INFORMATION_FINISHED_NTF",
	GWSetNodeVariationREQ:         "GW_SET_NODE_VARIATION_REQ",
	GWSetNodeVariationCFM:         "GW_SET_NODE_VARIATION_CFM",
	GWSetNodeNameREQ:              "GW_SET_NODE_NAME_REQ",
	GWSetNodeNameCFM:              "GW_SET_NODE_NAME_CFM",
	GWSetNodeVelocityREQ:          "GW_SET_NODE_VELOCITY_REQ",
	GWSetNodeVelocityCFM:          "GW_SET_NODE_VELOCITY_CFM",
	GWNodeInformationChangedNTF:   "GW_NODE_INFORMATION_CHANGED_NTF",
	GWNodeStatePositionChangedNTF: "GW_NODE_STATE_POSITION_CHANGED_NTF",

	GWHouseStatusMonitorEnableREQ:  "GW_HOUSE_STATUS_MONITOR_ENABLE_REQ",
	GWHouseStatusMonitorEnableCFM:  "GW_HOUSE_STATUS_MONITOR_ENABLE_CFM",
	GWHouseStatusMonitorDisableREQ: "GW_HOUSE_STATUS_MONITOR_DISABLE_REQ",
	GWHouseStatusMonitorDisableCFM: "GW_HOUSE_STATUS_MONITOR_DISABLE_CFM",

	GWCommandSendREQ:          "GW_COMMAND_SEND_REQ",
	GWCommandSendCFM:          "GW_COMMAND_SEND_CFM",
	GWCommandRunStatusNTF:     "GW_COMMAND_RUN_STATUS_NTF",
	GWCommandRemainingTimeNTF: "GW_COMMAND_REMAINING_TIME_NTF",
	GWSessionFinishedNTF:      "GW_SESSION_FINISHED_NTF",
	GWStatusRequestREQ:        "GW_STATUS_REQUEST_REQ",
	GWStatusRequestCFM:        "GW_STATUS_REQUEST_CFM",
	GWStatusRequestNTF:        "GW_STATUS_REQUEST_NTF",
	GWWinkSendREQ:             "GW_WINK_SEND_REQ",
	GWWinkSendCFM:             "GW_WINK_SEND_CFM",
	GWWinkSendNTF:             "GW_WINK_SEND_NTF",

	GWSetLimitationREQ:       "GW_SET_LIMITATION_REQ",
	GWSetLimitationCFM:       "GW_SET_LIMITATION_CFM",
	GWGetLimitationStatusREQ: "GW_GET_LIMITATION_STATUS_REQ",
	GWGetLimitationStatusCFM: "GW_GET_LIMITATION_STATUS_CFM",
	GWLimitationStatusNTF:    "GW_LIMITATION_STATUS_NTF",

	GWModeSendREQ: "GW_MODE_SEND_REQ",
	GWModeSendCFM: "GW_MODE_SEND_CFM",
	GWModeSendNTF: "GW_MODE_SEND_NTF",

	GWGetSceneListREQ: "GW_GET_SCENE_LIST_REQ",
	GWGetSceneListCFM: "GW_GET_SCENE_LIST_CFM",
	GWGetSceneListNTF: "GW_GET_SCENE_LIST_NTF",

	GWActivateSceneREQ: "GW_ACTIVATE_SCENE_REQ",
	GWActivateSceneCFM: "GW_ACTIVATE_SCENE_CFM",
	GWStopSceneREQ:     "GW_STOP_SCENE_REQ",
	GWStopSceneCFM:     "GW_STOP_SCENE_CFM",

	GWActivateProductGroupREQ: "GW_ACTIVATE_PRODUCTGROUP_REQ",
	GWActivateProductGroupCFM: "GW_ACTIVATE_PRODUCTGROUP_CFM",
	GWActivateProductGroupNTF: "GW_ACTIVATE_PRODUCTGROUP_NTF",

	GWPasswordEnterREQ:  "GW_PASSWORD_ENTER_REQ",
	GWPasswordEnterCFM:  "GW_PASSWORD_ENTER_CFM",
	GWPasswordChangeREQ: "GW_PASSWORD_CHANGE_REQ",
	GWPasswordChangeCFM: "GW_PASSWORD_CHANGE_CFM",
	GWPasswordChangeNTF: "GW_PASSWORD_CHANGE_NTF",
}

// Known reports whether code is part of the documented command space.
func Known(code Command) bool {
	_, ok := commandNames[code]
	return ok
}

// String returns the documented name of the command, or a hex placeholder
// for codes outside the known space.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("GW_UNKNOWN(0x%04X)", uint16(c))
}

// IsWireCommand reports whether the command may appear on the wire.
// Pseudo-commands are internal only.
func (c Command) IsWireCommand() bool {
	return c >= 0
}
